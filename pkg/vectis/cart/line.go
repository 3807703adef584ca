package cart

import (
	"maps"
	"slices"
)

// Extra is an add-on ingredient on a line. Quantity is per unit of the line.
type Extra struct {
	IngredientID string  `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// Line is one product entry in the cart.
type Line struct {
	ProductID    int     `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Category     string  `json:"category,omitempty"`
	Customizable bool    `json:"customizable,omitempty"`

	// Size is empty for unsized products.
	Size   string            `json:"size,omitempty"`
	Extras map[string]*Extra `json:"extras,omitempty"`

	// ExtrasExpanded is the presentation state of the extras panel.
	ExtrasExpanded bool `json:"extrasExpanded,omitempty"`
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := l
	if l.Extras != nil {
		out.Extras = make(map[string]*Extra, len(l.Extras))
		for id, ex := range l.Extras {
			cp := *ex
			out.Extras[id] = &cp
		}
	}
	return out
}

// Cart is the ordered list of lines.
type Cart []Line

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for i, l := range c {
		out[i] = l.Clone()
	}
	return out
}

// CloneValue lets the state store snapshot carts independently.
func (c Cart) CloneValue() any {
	return c.Clone()
}

// IndexOf returns the index of the first line for productID, or -1.
func (c Cart) IndexOf(productID int) int {
	for i, l := range c {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// ExtraIDs returns the line's extra ids in a stable order.
func (l Line) ExtraIDs() []string {
	return slices.Sorted(maps.Keys(l.Extras))
}
