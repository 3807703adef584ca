package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/observability"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// Checkout creates orders from the current cart.
type Checkout struct {
	store  *state.Store
	engine *cart.Engine
	ids    *IDSource
	now    func() time.Time

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// CheckoutOption configures a Checkout.
type CheckoutOption func(*Checkout)

// WithIDSource sets the order id source.
func WithIDSource(ids *IDSource) CheckoutOption {
	return func(c *Checkout) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithClock sets the clock used for order timestamps.
func WithClock(now func() time.Time) CheckoutOption {
	return func(c *Checkout) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CheckoutOption {
	return func(c *Checkout) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) CheckoutOption {
	return func(c *Checkout) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
func WithSpanManager(s observability.SpanManager) CheckoutOption {
	return func(c *Checkout) {
		if s != nil {
			c.spans = s
		}
	}
}

// NewCheckout creates a Checkout over store and engine.
func NewCheckout(store *state.Store, engine *cart.Engine, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		store:   store,
		engine:  engine,
		now:     time.Now,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = NewIDSource(c.now)
	}
	c.logger = observability.OrDefault(c.logger)
	return c
}

// Place creates an order from the cart, appends it to "orders" and clears
// the cart. An empty cart returns ErrEmptyCart and changes nothing.
func (c *Checkout) Place(ctx context.Context) (*Record, error) {
	items := c.engine.Lines()
	if len(items) == 0 {
		observability.LogCartRejected(c.logger, "checkout", ErrEmptyCart)
		return nil, ErrEmptyCart
	}

	ctx, span := c.spans.StartCheckoutSpan(ctx, len(items))
	totals := cart.CheckoutTotals(items, c.engine.Policy().CheckoutTaxRate)
	rec := Record{
		ID:        c.ids.Next(),
		Items:     items,
		Total:     totals.Total,
		Timestamp: c.now(),
		Status:    StatusPreparing,
		Customer:  DefaultCustomer,
	}

	orders, _ := state.GetAs[List](c.store, state.PathOrders)
	next := append(orders.Clone(), rec.Clone())
	if err := c.store.SetPath(state.PathOrders, next); err != nil {
		c.spans.EndSpanWithError(span, err)
		return nil, err
	}
	if err := c.engine.Clear(); err != nil {
		c.spans.EndSpanWithError(span, err)
		return nil, err
	}

	c.metrics.RecordCheckout(ctx, len(items), rec.Total)
	observability.LogCheckout(c.logger, rec.ID, len(items), rec.Total)
	c.spans.EndSpanWithError(span, nil)
	return &rec, nil
}
