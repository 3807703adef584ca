package catalog

// Sample returns the demo menu the terminal starts with.
func Sample() *Catalog {
	return New(SampleProducts(), SampleCategories(), SampleIngredients())
}

// SampleProducts returns the demo products.
func SampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Margherita Pizza", Price: 12.50, Category: "pizza", Image: "🍕", Customizable: true},
		{ID: 2, Name: "Pepperoni Pizza", Price: 14.00, Category: "pizza", Image: "🍕", Customizable: true},
		{ID: 3, Name: "Caesar Salad", Price: 8.50, Category: "salad", Image: "🥗"},
		{ID: 4, Name: "Coca Cola", Price: 2.50, Category: "beverages", Image: "🥤"},
		{ID: 5, Name: "Tiramisu", Price: 6.00, Category: "dessert", Image: "🍰"},
	}
}

// SampleCategories returns the demo categories, "all" first.
func SampleCategories() []Category {
	return []Category{
		{ID: CategoryAll, Name: "All", Icon: "📦"},
		{ID: "pizza", Name: "Pizza", Icon: "🍕"},
		{ID: "salad", Name: "Salads", Icon: "🥗"},
		{ID: "beverages", Name: "Drinks", Icon: "🥤"},
		{ID: "dessert", Name: "Desserts", Icon: "🍰"},
	}
}

// SampleIngredients returns the extras offered for customizable products.
func SampleIngredients() []Ingredient {
	return []Ingredient{
		{ID: "cheese", Name: "Extra Cheese", Price: 2.00, Icon: "🧀"},
		{ID: "mushrooms", Name: "Mushrooms", Price: 1.50, Icon: "🍄"},
		{ID: "pepperoni", Name: "Extra Pepperoni", Price: 2.50, Icon: "🍕"},
		{ID: "olives", Name: "Black Olives", Price: 1.50, Icon: "🫒"},
		{ID: "bell_peppers", Name: "Bell Peppers", Price: 1.50, Icon: "🌶️"},
		{ID: "onions", Name: "Red Onions", Price: 1.00, Icon: "🧅"},
		{ID: "tomatoes", Name: "Cherry Tomatoes", Price: 1.50, Icon: "🍅"},
		{ID: "basil", Name: "Fresh Basil", Price: 1.00, Icon: "🌿"},
		{ID: "ham", Name: "Ham", Price: 3.00, Icon: "🥓"},
	}
}
