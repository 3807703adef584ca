package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

var (
	margherita = catalog.Product{ID: 1, Name: "Margherita Pizza", Price: 12.50, Category: "pizza", Customizable: true}
	cola       = catalog.Product{ID: 4, Name: "Coca Cola", Price: 2.50, Category: "beverages"}
	cheese     = catalog.Ingredient{ID: "cheese", Name: "Extra Cheese", Price: 2.00}
)

func newEngine(t *testing.T) (*cart.Engine, *state.Store) {
	t.Helper()
	store := state.New(map[string]any{state.PathCart: cart.Cart{}})
	return cart.NewEngine(store), store
}

func TestAddToCart(t *testing.T) {
	e, _ := newEngine(t)

	require.NoError(t, e.AddToCart(margherita))
	require.NoError(t, e.AddToCart(cola))
	require.NoError(t, e.AddToCart(margherita))

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "30cm", lines[0].Size)
	assert.True(t, lines[0].Customizable)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Empty(t, lines[1].Size)
	assert.Equal(t, 3, e.ItemCount())
	assert.InDelta(t, 27.50, e.Subtotal(), 1e-9)
}

func TestAddToCart_NotifiesCartOnce(t *testing.T) {
	e, store := newEngine(t)
	var seen []cart.Cart
	store.Subscribe(state.PathCart, func(ch state.Change) error {
		seen = append(seen, ch.Current.(cart.Cart))
		return nil
	})

	require.NoError(t, e.AddToCart(cola))
	require.Len(t, seen, 1)
	assert.Len(t, seen[0], 1)
	assert.Equal(t, 1, store.HistoryLen())
}

func TestDecrease_FloorIsEnforced(t *testing.T) {
	e, store := newEngine(t)
	require.NoError(t, e.AddToCart(cola))
	before := store.HistoryLen()

	err := e.DecreaseQuantity(cola.ID)
	assert.ErrorIs(t, err, cart.ErrQuantityFloor)
	var lerr *cart.LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 0, lerr.Index)

	assert.Equal(t, before, store.HistoryLen())
	assert.Equal(t, 1, e.Lines()[0].Quantity)

	require.NoError(t, e.IncreaseQuantity(cola.ID))
	require.NoError(t, e.DecreaseQuantity(cola.ID))
	assert.Equal(t, 1, e.Lines()[0].Quantity)
}

func TestUnknownLine(t *testing.T) {
	e, store := newEngine(t)
	require.NoError(t, e.AddToCart(cola))
	before := store.HistoryLen()

	assert.ErrorIs(t, e.IncreaseQuantity(99), cart.ErrLineNotFound)
	assert.ErrorIs(t, e.IncreaseAt(5), cart.ErrLineNotFound)
	assert.ErrorIs(t, e.DecreaseAt(-1), cart.ErrLineNotFound)
	assert.ErrorIs(t, e.ToggleExtras(3), cart.ErrLineNotFound)
	_, err := e.RemoveAt(2)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
	_, err = e.RemoveProduct(99)
	assert.ErrorIs(t, err, cart.ErrLineNotFound)

	assert.Equal(t, before, store.HistoryLen())
}

func TestSetQuantityAt(t *testing.T) {
	e, store := newEngine(t)
	require.NoError(t, e.AddToCart(cola))

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "4", want: 4},
		{raw: " 7 ", want: 7},
		{raw: "abc", want: 1},
		{raw: "0", want: 1},
		{raw: "-3", want: 1},
		{raw: "2.5", want: 2},
		{raw: "3abc", want: 3},
		{raw: " +5 items", want: 5},
		{raw: "-2", want: 1},
		{raw: ".5", want: 1},
		{raw: "", want: 1},
		{raw: "99999999999999999999999", want: 1},
	}
	for _, tt := range tests {
		require.NoError(t, e.SetQuantityAt(0, tt.raw))
		assert.Equal(t, tt.want, e.Lines()[0].Quantity, "raw %q", tt.raw)
	}

	// Unchanged values are not written.
	before := store.HistoryLen()
	require.NoError(t, e.SetQuantityAt(0, "1"))
	assert.Equal(t, before, store.HistoryLen())

	require.NoError(t, e.UpdateQuantity(cola.ID, -2))
	assert.Equal(t, 1, e.Lines()[0].Quantity)
	require.NoError(t, e.UpdateQuantity(cola.ID, 3))
	assert.Equal(t, 3, e.Lines()[0].Quantity)
}

func TestSelectSize(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(margherita))

	require.NoError(t, e.SelectSize(0, "40cm"))
	assert.InDelta(t, 15.00, e.Lines()[0].UnitPrice, 1e-9)
	assert.Equal(t, "40cm", e.Lines()[0].Size)

	// Same size again is a no-op.
	require.NoError(t, e.SelectSize(0, "40cm"))
	assert.InDelta(t, 15.00, e.Lines()[0].UnitPrice, 1e-9)

	require.NoError(t, e.SelectSize(0, "30cm"))
	assert.InDelta(t, 12.50, e.Lines()[0].UnitPrice, 1e-9)

	assert.ErrorIs(t, e.SelectSize(0, "50cm"), cart.ErrUnknownSize)
}

func TestSelectSize_UnsizedLineStartsSmall(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(cola))
	require.NoError(t, e.SelectSize(0, "40cm"))
	assert.InDelta(t, 3.00, e.Lines()[0].UnitPrice, 1e-9)
}

func TestExtras(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(margherita))
	require.NoError(t, e.IncreaseQuantity(margherita.ID))

	require.NoError(t, e.IncreaseExtra(0, cheese))
	line := e.Lines()[0]
	require.Contains(t, line.Extras, "cheese")
	assert.Equal(t, 1, line.Extras["cheese"].Quantity)
	assert.InDelta(t, 29.00, cart.LineTotal(line), 1e-9)

	require.NoError(t, e.IncreaseExtra(0, cheese))
	assert.Equal(t, 2, e.Lines()[0].Extras["cheese"].Quantity)

	require.NoError(t, e.DecreaseExtra(0, "cheese"))
	require.NoError(t, e.DecreaseExtra(0, "cheese"))
	assert.NotContains(t, e.Lines()[0].Extras, "cheese")

	assert.ErrorIs(t, e.DecreaseExtra(0, "cheese"), cart.ErrExtraNotFound)
}

func TestToggleExtras(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(margherita))
	require.NoError(t, e.ToggleExtras(0))
	assert.True(t, e.Lines()[0].ExtrasExpanded)
	require.NoError(t, e.ToggleExtras(0))
	assert.False(t, e.Lines()[0].ExtrasExpanded)
}

func TestRemoveAndClear(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(margherita))
	require.NoError(t, e.AddToCart(cola))

	removed, err := e.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, margherita.Name, removed.Name)
	require.Len(t, e.Lines(), 1)

	require.NoError(t, e.AddToCart(margherita))
	removed, err = e.RemoveProduct(cola.ID)
	require.NoError(t, err)
	assert.Equal(t, cola.Name, removed.Name)

	require.NoError(t, e.Clear())
	assert.Empty(t, e.Lines())
	assert.Zero(t, e.Subtotal())
}

func TestUndoRestoresCartExactly(t *testing.T) {
	e, store := newEngine(t)
	require.NoError(t, e.AddToCart(margherita))
	require.NoError(t, e.IncreaseExtra(0, cheese))
	before := e.Lines()

	require.NoError(t, e.IncreaseExtra(0, cheese))
	require.NoError(t, e.SelectSize(0, "40cm"))
	require.True(t, store.Undo())
	require.True(t, store.Undo())
	assert.Equal(t, before, e.Lines())

	require.NoError(t, store.SetPath(state.PathCart, cart.Cart{}))
	require.True(t, store.Undo())
	assert.Equal(t, before, e.Lines())
}

func TestTotals(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddToCart(catalog.Product{ID: 9, Name: "Lasagna", Price: 10.00, Category: "pasta"}))
	require.NoError(t, e.IncreaseAt(0))
	got := e.Totals()
	assert.InDelta(t, 20.00, got.Subtotal, 1e-9)
	assert.InDelta(t, 4.20, got.Tax, 1e-9)
	assert.InDelta(t, 24.20, got.Total, 1e-9)
}

func TestWithPolicy(t *testing.T) {
	store := state.New(map[string]any{state.PathCart: cart.Cart{}})
	p := cart.DefaultPolicy()
	p.SizedCategory = "salad"
	p.SmallSize = "S"
	p.LargeSize = "L"
	e := cart.NewEngine(store, cart.WithPolicy(p))

	require.NoError(t, e.AddToCart(catalog.Product{ID: 3, Name: "Caesar Salad", Price: 8.50, Category: "salad"}))
	require.NoError(t, e.AddToCart(margherita))
	assert.Equal(t, "S", e.Lines()[0].Size)
	assert.Empty(t, e.Lines()[1].Size)
}
