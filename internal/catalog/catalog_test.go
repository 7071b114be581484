package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededCatalog(t *testing.T) {
	cat := NewSeeded()

	assert.Equal(t, "Oki Mart", cat.Store().Name)
	assert.Len(t, cat.Categories(), 3)

	avocado, ok := cat.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "Avocado", avocado.Name)
	assert.True(t, avocado.InStock)

	_, ok = cat.FindByID("404")
	assert.False(t, ok)
}

func TestCatalog_Search(t *testing.T) {
	cat := NewSeeded()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "by product name", query: "avocado", want: []string{"Avocado"}},
		{name: "case and whitespace normalized", query: "  AVOCADO ", want: []string{"Avocado"}},
		{name: "by category name", query: "meat", want: []string{"Chicken", "Beef", "Pork", "Turkey", "Lamb"}},
		{name: "no match", query: "sushi", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, p := range cat.Search(tt.query) {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	assert.Len(t, cat.Search(""), 15, "empty query returns everything")
}

func TestCatalog_ListByCategory(t *testing.T) {
	cat := NewSeeded()

	produce := cat.ListByCategory("1", "")
	assert.Len(t, produce, 6)
	for _, p := range produce {
		assert.Equal(t, "Produce", p.Category.Name)
	}

	filtered := cat.ListByCategory("1", "toma")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Tomatoes", filtered[0].Name)

	assert.Empty(t, cat.ListByCategory("2", "avocado"), "query from another category")
}

func TestCatalog_DecrementStock(t *testing.T) {
	cat := NewSeeded()

	p, ok := cat.DecrementStock("1", 5)
	require.True(t, ok)
	assert.Equal(t, 7, p.Stock)
	assert.True(t, p.InStock)

	p, _ = cat.DecrementStock("1", 100)
	assert.Zero(t, p.Stock, "floored at zero")
	assert.False(t, p.InStock)

	_, ok = cat.DecrementStock("404", 1)
	assert.False(t, ok)
}

func TestCatalog_ReadsReturnCopies(t *testing.T) {
	cat := NewSeeded()

	p, _ := cat.FindByID("1")
	p.Stock = 0

	again, _ := cat.FindByID("1")
	assert.Equal(t, 12, again.Stock, "callers cannot reach the live stock counter")

	list := cat.Search("avocado")
	list[0].Stock = 0
	again, _ = cat.FindByID("1")
	assert.Equal(t, 12, again.Stock)
}
