package order

import (
	"time"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
)

// SampleOrders returns the demo history relative to now: one order from
// yesterday and one from an hour ago.
func SampleOrders(now time.Time) List {
	return List{
		{
			ID: 1001,
			Items: cart.Cart{
				{
					ProductID:    1,
					Name:         "Margherita Pizza",
					UnitPrice:    12.50,
					Quantity:     2,
					Category:     "pizza",
					Customizable: true,
					Size:         "30cm",
					Extras: map[string]*cart.Extra{
						"cheese":    {IngredientID: "cheese", Name: "Extra Cheese", UnitPrice: 2.00, Quantity: 1},
						"mushrooms": {IngredientID: "mushrooms", Name: "Mushrooms", UnitPrice: 1.50, Quantity: 2},
					},
				},
				{ProductID: 4, Name: "Coca Cola", UnitPrice: 2.50, Quantity: 1, Category: "beverages"},
			},
			Total:     34.00,
			Timestamp: now.Add(-24 * time.Hour),
			Status:    StatusCompleted,
			Customer:  DefaultCustomer,
		},
		{
			ID: 1002,
			Items: cart.Cart{
				{ProductID: 2, Name: "Pepperoni Pizza", UnitPrice: 14.00, Quantity: 1, Category: "pizza", Customizable: true, Size: "30cm"},
				{ProductID: 3, Name: "Caesar Salad", UnitPrice: 8.50, Quantity: 1, Category: "salad"},
			},
			Total:     22.50,
			Timestamp: now.Add(-time.Hour),
			Status:    StatusCompleted,
			Customer:  DefaultCustomer,
		},
	}
}
