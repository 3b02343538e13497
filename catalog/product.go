// Package catalog filters and ranks products, in memory and behind
// a sqlite-backed store.
package catalog

import (
	"github.com/samber/lo"
)

type Product struct {
	Name   string
	Price  float64
	Rating float64
}

// FilterByRating keeps the products rated at least minRating.
func FilterByRating(products []Product, minRating float64) []Product {
	return lo.Filter(products, func(p Product, _ int) bool {
		return p.Rating >= minRating
	})
}

// MostExpensive returns the product with the highest price. ok is
// false for an empty input; ties keep the earliest product.
func MostExpensive(products []Product) (Product, bool) {
	if len(products) == 0 {
		return Product{}, false
	}
	return lo.MaxBy(products, func(a, b Product) bool {
		return a.Price > b.Price
	}), true
}

// TopRated returns the highest-rated product. ok is false for an
// empty input.
func TopRated(products []Product) (Product, bool) {
	if len(products) == 0 {
		return Product{}, false
	}
	return lo.MaxBy(products, func(a, b Product) bool {
		return a.Rating > b.Rating
	}), true
}
