// Package strcase formats user-facing names and titles.
package strcase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of word and lower-cases the
// rest. An empty string stays empty.
func Capitalize(word string) string {
	if len(word) == 0 {
		return word
	}
	first, size := utf8.DecodeRuneInString(word)
	builder := strings.Builder{}
	builder.Grow(len(word))
	builder.WriteRune(unicode.ToUpper(first))
	builder.WriteString(strings.ToLower(word[size:]))
	return builder.String()
}

// Title capitalizes every whitespace-separated word of s, collapsing
// runs of whitespace into single spaces.
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// FormatFullName renders "First Last" with both parts capitalized.
func FormatFullName(first, last string) string {
	return Title(first + " " + last)
}
