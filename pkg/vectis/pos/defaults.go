package pos

import (
	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/order"
	"github.com/randalmurphal/vectis/pkg/vectis/screen"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// DefaultState returns the initial state tree with typed collections.
func DefaultState() map[string]any {
	return map[string]any{
		state.PathCart:             cart.Cart{},
		state.PathCurrentCategory:  catalog.CategoryAll,
		state.PathSearchQuery:      "",
		state.PathOrders:           order.List{},
		state.PathProducts:         []catalog.Product{},
		state.PathCategories:       []catalog.Category{},
		state.PathExtraIngredients: []catalog.Ingredient{},
		state.PathUser: map[string]any{
			"name": "Administrator",
			"role": "admin",
		},
		state.PathUI: map[string]any{
			"currentScreen": screen.OrderCreation,
			"loading":       false,
			"error":         nil,
		},
	}
}
