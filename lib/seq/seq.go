// Package seq holds small generic slice helpers.
package seq

import (
	"github.com/samber/lo"
)

// Concat appends all input slices into one freshly allocated slice.
// Inputs are never mutated.
func Concat[T any](slices ...[]T) []T {
	return lo.Flatten(slices)
}

// Filter keeps the elements satisfying predicate, in order.
func Filter[T any](collection []T, predicate func(item T) bool) []T {
	return lo.Filter(collection, func(item T, _ int) bool {
		return predicate(item)
	})
}

// MaxBy returns the element for which weight is maximal. ok is false
// for an empty collection. Ties keep the earliest element.
func MaxBy[T any](collection []T, weight func(item T) float64) (T, bool) {
	if len(collection) == 0 {
		var zero T
		return zero, false
	}
	return lo.MaxBy(collection, func(a, b T) bool {
		return weight(a) > weight(b)
	}), true
}
