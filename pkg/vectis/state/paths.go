package state

// Well-known paths of the POS state tree.
const (
	PathCart             = "cart"
	PathOrders           = "orders"
	PathProducts         = "products"
	PathCategories       = "categories"
	PathExtraIngredients = "extraIngredients"
	PathCurrentCategory  = "currentCategory"
	PathSearchQuery      = "searchQuery"
	PathUser             = "user"
	PathUI               = "ui"
	PathCurrentScreen    = "ui.currentScreen"
	PathLoading          = "ui.loading"
	PathError            = "ui.error"

	// Wildcard subscribes to every mutation, undo and reset. It is not a
	// valid write path.
	Wildcard = "*"
)

// DefaultState returns the untyped default tree. Applications usually supply
// their own through WithDefaults so that cart and orders carry concrete types.
func DefaultState() map[string]any {
	return map[string]any{
		PathCart:            []any{},
		PathCurrentCategory: "all",
		PathSearchQuery:     "",
		PathOrders:          []any{},
		PathProducts:        []any{},
		PathUser: map[string]any{
			"name": "Administrator",
			"role": "admin",
		},
		PathUI: map[string]any{
			"currentScreen": "order-creation",
			"loading":       false,
			"error":         nil,
		},
	}
}
