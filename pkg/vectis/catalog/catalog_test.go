package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
)

func names(ps []catalog.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	c := catalog.Sample()

	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{name: "all", category: catalog.CategoryAll, want: []string{
			"Margherita Pizza", "Pepperoni Pizza", "Caesar Salad", "Coca Cola", "Tiramisu",
		}},
		{name: "category", category: "pizza", want: []string{"Margherita Pizza", "Pepperoni Pizza"}},
		{name: "query case-insensitive", category: catalog.CategoryAll, query: "  CAESAR ", want: []string{"Caesar Salad"}},
		{name: "category and query", category: "pizza", query: "pep", want: []string{"Pepperoni Pizza"}},
		{name: "empty category means all", query: "cola", want: []string{"Coca Cola"}},
		{name: "no match", category: "salad", query: "pizza", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(c.Filter(tt.category, tt.query)))
		})
	}
}

func TestProductLookup(t *testing.T) {
	c := catalog.Sample()

	p, err := c.Product(2)
	require.NoError(t, err)
	assert.Equal(t, "Pepperoni Pizza", p.Name)
	assert.True(t, p.Customizable)

	p, err = c.ProductByRef(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 2.50, p.Price)

	_, err = c.Product(99)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	_, err = c.ProductByRef("abc")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestIngredientLookup(t *testing.T) {
	c := catalog.Sample()
	ing, err := c.Ingredient("cheese")
	require.NoError(t, err)
	assert.Equal(t, 2.00, ing.Price)

	_, err = c.Ingredient("anchovies")
	assert.ErrorIs(t, err, catalog.ErrIngredientNotFound)
	assert.Len(t, c.Ingredients(), 9)
}

func TestCategoriesKeepLoadOrder(t *testing.T) {
	cats := catalog.Sample().Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, catalog.CategoryAll, cats[0].ID)
	assert.Equal(t, "dessert", cats[len(cats)-1].ID)
}

func TestRegistry(t *testing.T) {
	r := catalog.NewRegistry[string, int]()
	r.Register("b", 1)
	r.Register("a", 2)
	r.Register("b", 3)

	assert.Equal(t, []int{3, 2}, r.Values())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Has("a"))

	r.Delete("b")
	r.Delete("missing")
	assert.Equal(t, []int{2}, r.Values())

	var seen []string
	r.Register("c", 4)
	r.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		r.Delete(k)
		return true
	})
	assert.Equal(t, []string{"a", "c"}, seen)
	assert.Equal(t, 0, r.Len())
}
