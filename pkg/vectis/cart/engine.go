package cart

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/observability"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// Engine applies cart mutations to the "cart" path of a state store.
type Engine struct {
	store  *state.Store
	policy Policy
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPolicy sets the pricing policy. Default DefaultPolicy().
func WithPolicy(p Policy) EngineOption {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithLogger sets the logger for rejected operations.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over store.
func NewEngine(store *state.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = observability.OrDefault(e.logger)
	return e
}

// Policy returns the engine's pricing policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Lines returns a copy of the current cart.
func (e *Engine) Lines() Cart {
	return e.current().Clone()
}

// ItemCount returns the total quantity across lines.
func (e *Engine) ItemCount() int {
	return ItemCount(e.current())
}

// Subtotal returns the cart subtotal before tax.
func (e *Engine) Subtotal() float64 {
	return Subtotal(e.current())
}

// Totals prices the cart with the checkout tax rate.
func (e *Engine) Totals() Totals {
	return CheckoutTotals(e.current(), e.policy.CheckoutTaxRate)
}

// current returns the live cart. Callers must not modify it.
func (e *Engine) current() Cart {
	c, _ := state.GetAs[Cart](e.store, state.PathCart)
	return c
}

// mutate runs fn on a copy of the cart and writes the result back. If fn
// fails the store is not touched.
func (e *Engine) mutate(op string, fn func(c Cart) (Cart, error)) error {
	next, err := fn(e.current().Clone())
	if err != nil {
		observability.LogCartRejected(e.logger, op, err)
		return err
	}
	return e.store.SetPath(state.PathCart, next)
}

// mutateLine runs fn on the line at index i.
func (e *Engine) mutateLine(op string, i int, fn func(l *Line) error) error {
	return e.mutate(op, func(c Cart) (Cart, error) {
		if i < 0 || i >= len(c) {
			return nil, &LineError{Index: i, Err: ErrLineNotFound}
		}
		if err := fn(&c[i]); err != nil {
			return nil, &LineError{Index: i, Err: err}
		}
		return c, nil
	})
}

func (e *Engine) indexOf(productID int) (int, error) {
	i := e.current().IndexOf(productID)
	if i < 0 {
		err := fmt.Errorf("%w: product %d", ErrLineNotFound, productID)
		return -1, err
	}
	return i, nil
}

// AddToCart adds one unit of p. An existing line for the product is
// incremented; otherwise a new line is appended with quantity 1, sized to
// the small size when p belongs to the sized category.
func (e *Engine) AddToCart(p catalog.Product) error {
	return e.mutate("add", func(c Cart) (Cart, error) {
		if i := c.IndexOf(p.ID); i >= 0 {
			c[i].Quantity++
			return c, nil
		}
		line := Line{
			ProductID:    p.ID,
			Name:         p.Name,
			UnitPrice:    p.Price,
			Quantity:     1,
			Category:     p.Category,
			Customizable: p.Customizable,
		}
		if p.Category == e.policy.SizedCategory {
			line.Size = e.policy.SmallSize
		}
		return append(c, line), nil
	})
}

// IncreaseQuantity adds one unit to the product's line.
func (e *Engine) IncreaseQuantity(productID int) error {
	i, err := e.indexOf(productID)
	if err != nil {
		observability.LogCartRejected(e.logger, "increase", err)
		return err
	}
	return e.IncreaseAt(i)
}

// DecreaseQuantity removes one unit from the product's line. It returns
// ErrQuantityFloor without mutating when the line is at 1.
func (e *Engine) DecreaseQuantity(productID int) error {
	i, err := e.indexOf(productID)
	if err != nil {
		observability.LogCartRejected(e.logger, "decrease", err)
		return err
	}
	return e.DecreaseAt(i)
}

// IncreaseAt adds one unit to line i.
func (e *Engine) IncreaseAt(i int) error {
	return e.mutateLine("increase", i, func(l *Line) error {
		l.Quantity++
		return nil
	})
}

// DecreaseAt removes one unit from line i, never going below 1.
func (e *Engine) DecreaseAt(i int) error {
	return e.mutateLine("decrease", i, func(l *Line) error {
		if l.Quantity <= 1 {
			return ErrQuantityFloor
		}
		l.Quantity--
		return nil
	})
}

// SetQuantityAt sets line i from user input. The leading integer of raw is
// used, so "2.5" sets 2 and "3abc" sets 3. Input without one, or below 1,
// becomes 1. An unchanged quantity is not written.
func (e *Engine) SetQuantityAt(i int, raw string) error {
	n := leadingInt(raw)
	if n < 1 {
		n = 1
	}
	c := e.current()
	if i >= 0 && i < len(c) && c[i].Quantity == n {
		return nil
	}
	return e.mutateLine("set-quantity", i, func(l *Line) error {
		l.Quantity = n
		return nil
	})
}

// leadingInt parses an optionally signed run of digits at the start of s,
// after surrounding space. It returns 0 when there is none or it overflows.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// UpdateQuantity sets the product's line to n, clamped to at least 1.
func (e *Engine) UpdateQuantity(productID, n int) error {
	i, err := e.indexOf(productID)
	if err != nil {
		observability.LogCartRejected(e.logger, "update-quantity", err)
		return err
	}
	return e.SetQuantityAt(i, strconv.Itoa(n))
}

// SelectSize moves line i to size, rescaling its unit price.
func (e *Engine) SelectSize(i int, size string) error {
	if size != e.policy.SmallSize && size != e.policy.LargeSize {
		err := &LineError{Index: i, Err: fmt.Errorf("%w: %q", ErrUnknownSize, size)}
		observability.LogCartRejected(e.logger, "select-size", err)
		return err
	}
	c := e.current()
	if i >= 0 && i < len(c) && c[i].Size == size {
		return nil
	}
	return e.mutateLine("select-size", i, func(l *Line) error {
		from := l.Size
		if from == "" {
			from = e.policy.SmallSize
		}
		l.UnitPrice = e.policy.Resize(l.UnitPrice, from, size)
		l.Size = size
		return nil
	})
}

// ToggleExtras flips the expanded flag of line i's extras panel.
func (e *Engine) ToggleExtras(i int) error {
	return e.mutateLine("toggle-extras", i, func(l *Line) error {
		l.ExtrasExpanded = !l.ExtrasExpanded
		return nil
	})
}

// IncreaseExtra adds one unit of ing to line i, creating the extra if absent.
func (e *Engine) IncreaseExtra(i int, ing catalog.Ingredient) error {
	return e.mutateLine("increase-extra", i, func(l *Line) error {
		if l.Extras == nil {
			l.Extras = make(map[string]*Extra)
		}
		ex, ok := l.Extras[ing.ID]
		if !ok {
			ex = &Extra{IngredientID: ing.ID, Name: ing.Name, UnitPrice: ing.Price}
			l.Extras[ing.ID] = ex
		}
		ex.Quantity++
		return nil
	})
}

// DecreaseExtra removes one unit of an extra from line i. An extra that
// reaches zero is deleted.
func (e *Engine) DecreaseExtra(i int, ingredientID string) error {
	return e.mutateLine("decrease-extra", i, func(l *Line) error {
		ex, ok := l.Extras[ingredientID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrExtraNotFound, ingredientID)
		}
		ex.Quantity--
		if ex.Quantity <= 0 {
			delete(l.Extras, ingredientID)
		}
		return nil
	})
}

// RemoveAt deletes line i and returns it.
func (e *Engine) RemoveAt(i int) (Line, error) {
	var removed Line
	err := e.mutate("remove", func(c Cart) (Cart, error) {
		if i < 0 || i >= len(c) {
			return nil, &LineError{Index: i, Err: ErrLineNotFound}
		}
		removed = c[i]
		return append(c[:i], c[i+1:]...), nil
	})
	return removed, err
}

// RemoveProduct deletes the product's line.
func (e *Engine) RemoveProduct(productID int) (Line, error) {
	i, err := e.indexOf(productID)
	if err != nil {
		observability.LogCartRejected(e.logger, "remove", err)
		return Line{}, err
	}
	return e.RemoveAt(i)
}

// Clear empties the cart.
func (e *Engine) Clear() error {
	return e.store.SetPath(state.PathCart, Cart{})
}
