package cart_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

func freshEngine() *cart.Engine {
	return cart.NewEngine(state.New(map[string]any{state.PathCart: cart.Cart{}}))
}

// Property: quantity stays >= 1 under any increase/decrease sequence.
func TestQuantityNeverBelowOne(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("quantity >= 1", prop.ForAll(
		func(ops []bool) bool {
			e := freshEngine()
			if err := e.AddToCart(cola); err != nil {
				return false
			}
			want := 1
			for _, up := range ops {
				if up {
					_ = e.IncreaseAt(0)
					want++
				} else {
					_ = e.DecreaseAt(0)
					if want > 1 {
						want--
					}
				}
				if e.Lines()[0].Quantity < 1 {
					return false
				}
			}
			return e.Lines()[0].Quantity == want
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

// Property: no zero-quantity extra survives a decrease.
func TestNoZeroQuantityExtras(t *testing.T) {
	ingredients := catalog.SampleIngredients()[:3]
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("extras always have quantity >= 1", prop.ForAll(
		func(ops []int) bool {
			e := freshEngine()
			if err := e.AddToCart(margherita); err != nil {
				return false
			}
			for _, op := range ops {
				ing := ingredients[op%len(ingredients)]
				if op >= len(ingredients) {
					_ = e.IncreaseExtra(0, ing)
				} else {
					_ = e.DecreaseExtra(0, ing.ID)
				}
				for _, ex := range e.Lines()[0].Extras {
					if ex.Quantity < 1 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2*len(ingredients)-1)),
	))

	properties.TestingRun(t)
}

// Property: a size round trip drifts by at most one cent.
func TestSizeRoundTripDrift(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("up then down stays within a cent", prop.ForAll(
		func(cents int, trips int) bool {
			start := float64(cents) / 100
			e := freshEngine()
			p := catalog.Product{ID: 1, Name: "Pizza", Price: start, Category: "pizza"}
			if err := e.AddToCart(p); err != nil {
				return false
			}
			for i := 0; i < trips; i++ {
				prev := e.Lines()[0].UnitPrice
				if e.SelectSize(0, "40cm") != nil || e.SelectSize(0, "30cm") != nil {
					return false
				}
				if math.Abs(e.Lines()[0].UnitPrice-prev) > 0.01+1e-9 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100000),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}

// Property: SetPath then Get returns the written cart.
func TestSetThenGetCart(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("set/get round trip", prop.ForAll(
		func(qty []int) bool {
			store := state.New(nil)
			c := make(cart.Cart, len(qty))
			for i, q := range qty {
				c[i] = cart.Line{ProductID: i, Quantity: q}
			}
			if store.SetPath(state.PathCart, c) != nil {
				return false
			}
			got, ok := state.GetAs[cart.Cart](store, state.PathCart)
			return ok && len(got) == len(c) && cart.ItemCount(got) == cart.ItemCount(c)
		},
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t)
}
