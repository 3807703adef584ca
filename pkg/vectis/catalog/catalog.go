package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CategoryAll selects every product.
const CategoryAll = "all"

// ErrProductNotFound is returned for unknown product ids.
var ErrProductNotFound = errors.New("product not found")

// ErrIngredientNotFound is returned for unknown ingredient ids.
var ErrIngredientNotFound = errors.New("ingredient not found")

// Product is a sellable item.
type Product struct {
	ID           int     `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Price        float64 `json:"price" yaml:"price"`
	Category     string  `json:"category" yaml:"category"`
	Image        string  `json:"image,omitempty" yaml:"image,omitempty"`
	Customizable bool    `json:"customizable,omitempty" yaml:"customizable,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Ingredient is an extra that can be added to a customizable product.
type Ingredient struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
	Icon  string  `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Catalog indexes products, categories and ingredients.
type Catalog struct {
	products    *Registry[int, Product]
	categories  *Registry[string, Category]
	ingredients *Registry[string, Ingredient]
}

// New builds a catalog. Later duplicates replace earlier ones.
func New(products []Product, categories []Category, ingredients []Ingredient) *Catalog {
	c := &Catalog{
		products:    NewRegistry[int, Product](),
		categories:  NewRegistry[string, Category](),
		ingredients: NewRegistry[string, Ingredient](),
	}
	for _, p := range products {
		c.products.Register(p.ID, p)
	}
	for _, cat := range categories {
		c.categories.Register(cat.ID, cat)
	}
	for _, ing := range ingredients {
		c.ingredients.Register(ing.ID, ing)
	}
	return c
}

// Product returns the product with id.
func (c *Catalog) Product(id int) (Product, error) {
	p, ok := c.products.Get(id)
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return p, nil
}

// ProductByRef resolves a product id carried as text, e.g. a data attribute.
func (c *Catalog) ProductByRef(ref string) (Product, error) {
	id, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, ref)
	}
	return c.Product(id)
}

// Ingredient returns the ingredient with id.
func (c *Catalog) Ingredient(id string) (Ingredient, error) {
	ing, ok := c.ingredients.Get(id)
	if !ok {
		return Ingredient{}, fmt.Errorf("%w: %q", ErrIngredientNotFound, id)
	}
	return ing, nil
}

// Products returns every product in load order.
func (c *Catalog) Products() []Product {
	return c.products.Values()
}

// Categories returns every category in load order.
func (c *Catalog) Categories() []Category {
	return c.categories.Values()
}

// Ingredients returns every ingredient in load order.
func (c *Catalog) Ingredients() []Ingredient {
	return c.ingredients.Values()
}

// Filter returns products in category (CategoryAll or "" for any) whose name
// contains query, case-insensitively. An empty query matches everything.
func (c *Catalog) Filter(category, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Product
	c.products.Range(func(_ int, p Product) bool {
		if category != "" && category != CategoryAll && p.Category != category {
			return true
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			return true
		}
		out = append(out, p)
		return true
	})
	return out
}
