package order

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/config"
	"github.com/randalmurphal/vectis/pkg/vectis/observability"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// History is the order review screen's model: listing, search, selection,
// status updates and redisplay totals.
type History struct {
	store   *state.Store
	archive Archive
	rate    float64
	logger  *slog.Logger

	mu       sync.Mutex
	selected int64
	unsubs   []state.Unsubscribe
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithHistoryTaxRate sets the tax share used to split stored totals.
func WithHistoryTaxRate(rate float64) HistoryOption {
	return func(h *History) {
		h.rate = rate
	}
}

// WithHistoryLogger sets the logger.
func WithHistoryLogger(logger *slog.Logger) HistoryOption {
	return func(h *History) {
		h.logger = logger
	}
}

// NewHistory creates a History that mirrors the "orders" path into archive.
// Records already in the store are indexed immediately.
func NewHistory(store *state.Store, archive Archive, opts ...HistoryOption) (*History, error) {
	h := &History{
		store:   store,
		archive: archive,
		rate:    config.DefaultSettings().HistoryTaxRate,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = observability.OrDefault(h.logger)

	if err := h.sync(h.orders()); err != nil {
		return nil, err
	}
	h.unsubs = append(h.unsubs,
		// A replaced list may be shorter than the archived one.
		store.Subscribe(state.PathOrders, func(ch state.Change) error {
			list, _ := ch.Current.(List)
			return h.rebuild(list)
		}),
		// Undo and reset replace the whole tree.
		store.Subscribe(state.Wildcard, func(ch state.Change) error {
			if ch.Path != state.Wildcard {
				return nil
			}
			return h.rebuild(h.orders())
		}),
	)
	return h, nil
}

func (h *History) orders() List {
	list, _ := state.GetAs[List](h.store, state.PathOrders)
	return list
}

// sync puts every record in list into the archive. Put replaces, so
// repeated syncs are harmless.
func (h *History) sync(list List) error {
	for _, rec := range list {
		if err := h.archive.Put(rec); err != nil {
			return fmt.Errorf("archive order %d: %w", rec.ID, err)
		}
	}
	return nil
}

// rebuild makes the archive hold exactly the records in list.
func (h *History) rebuild(list List) error {
	if err := h.archive.Reset(); err != nil {
		return fmt.Errorf("reset order archive: %w", err)
	}
	return h.sync(list)
}

// All returns every order, newest first.
func (h *History) All() List {
	return h.orders().NewestFirst()
}

// Search returns orders matching query, newest first.
func (h *History) Search(query string) ([]Record, error) {
	return h.archive.Search(query)
}

// Get returns one order.
func (h *History) Get(id int64) (Record, error) {
	return h.archive.Get(id)
}

// Select marks id as the order shown in the details panel.
func (h *History) Select(id int64) (Record, error) {
	rec, err := h.archive.Get(id)
	if err != nil {
		return Record{}, err
	}
	h.mu.Lock()
	h.selected = id
	h.mu.Unlock()
	return rec, nil
}

// Selected returns the selected order, if any.
func (h *History) Selected() (Record, bool) {
	h.mu.Lock()
	id := h.selected
	h.mu.Unlock()
	if id == 0 {
		return Record{}, false
	}
	rec, err := h.archive.Get(id)
	if err != nil {
		return Record{}, false
	}
	return rec, true
}

// ClearSelection hides the details panel.
func (h *History) ClearSelection() {
	h.mu.Lock()
	h.selected = 0
	h.mu.Unlock()
}

// UpdateStatus changes an order's status in the archive, then in the store.
// The store is left alone when the archive rejects the change.
func (h *History) UpdateStatus(id int64, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	list := h.orders().Clone()
	i := list.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := h.archive.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}
	list[i].Status = status
	return h.store.SetPath(state.PathOrders, list)
}

// Summary splits the stored total of order id with the history tax rate.
func (h *History) Summary(id int64) (cart.Totals, error) {
	rec, err := h.archive.Get(id)
	if err != nil {
		return cart.Totals{}, err
	}
	return cart.HistoryTotals(rec.Total, h.rate), nil
}

// TaxRate returns the history tax rate.
func (h *History) TaxRate() float64 {
	return h.rate
}

// Close stops mirroring. The archive is owned by the caller.
func (h *History) Close() {
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.unsubs = nil
}
