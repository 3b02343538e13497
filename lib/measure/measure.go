// Package measure sizes heterogeneous values: texts report their
// length, numbers are doubled.
package measure

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/typelab/typelab/lib/infra"
)

var ErrUnsupportedKind = infra.NewErrorStack("value is neither a string nor a number")

type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Double returns n * 2.
func Double[N Number](n N) N {
	return n * 2
}

// Length counts the runes of s, not its bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Describe renders the measurement of v: the length for strings,
// the doubled value for numbers. Any other kind fails with
// ErrUnsupportedKind.
func Describe(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("length %d", Length(x)), nil
	case int:
		return "doubled " + strconv.FormatInt(int64(Double(x)), 10), nil
	case int32:
		return "doubled " + strconv.FormatInt(int64(Double(x)), 10), nil
	case int64:
		return "doubled " + strconv.FormatInt(Double(x), 10), nil
	case uint:
		return "doubled " + strconv.FormatUint(uint64(Double(x)), 10), nil
	case uint64:
		return "doubled " + strconv.FormatUint(Double(x), 10), nil
	case float32:
		return "doubled " + strconv.FormatFloat(float64(Double(x)), 'g', -1, 32), nil
	case float64:
		return "doubled " + strconv.FormatFloat(Double(x), 'g', -1, 64), nil
	default:
		return "", infra.WrapErrorStackWithMessage(ErrUnsupportedKind, fmt.Sprintf("%T", v))
	}
}
