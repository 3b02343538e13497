package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var products = []Product{
	{Name: "keyboard", Price: 49.90, Rating: 4.2},
	{Name: "monitor", Price: 219.00, Rating: 4.8},
	{Name: "cable", Price: 4.99, Rating: 3.1},
	{Name: "dock", Price: 219.00, Rating: 2.9},
}

func TestFilterByRating(t *testing.T) {
	got := FilterByRating(products, 4.0)
	require.Len(t, got, 2)
	assert.Equal(t, "keyboard", got[0].Name)
	assert.Equal(t, "monitor", got[1].Name)

	assert.Empty(t, FilterByRating(products, 5.0))
	assert.Empty(t, FilterByRating(nil, 1.0))
	assert.Len(t, FilterByRating(products, 0), len(products))
}

func TestMostExpensive(t *testing.T) {
	got, ok := MostExpensive(products)
	require.True(t, ok)
	assert.Equal(t, "monitor", got.Name, "ties keep the earliest product")
	assert.Equal(t, 219.00, got.Price)

	_, ok = MostExpensive(nil)
	assert.False(t, ok)
}

func TestTopRated(t *testing.T) {
	got, ok := TopRated(products)
	require.True(t, ok)
	assert.Equal(t, "monitor", got.Name)

	_, ok = TopRated([]Product{})
	assert.False(t, ok)
}
