package pos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
	"github.com/randalmurphal/vectis/pkg/vectis/catalog"
	"github.com/randalmurphal/vectis/pkg/vectis/config"
	"github.com/randalmurphal/vectis/pkg/vectis/observability"
	"github.com/randalmurphal/vectis/pkg/vectis/order"
	"github.com/randalmurphal/vectis/pkg/vectis/router"
	"github.com/randalmurphal/vectis/pkg/vectis/screen"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
	"github.com/randalmurphal/vectis/pkg/vectis/template"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("pos app already started")

// App owns one terminal: its state, router and domain services.
type App struct {
	settings  config.Settings
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	now       func() time.Time
	notifier  Notifier
	confirmer Confirmer
	printer   Printer
	presenter screen.Presenter
	view      View

	archive    order.Archive
	ownArchive bool

	store    *state.Store
	router   *router.Router
	catalog  *catalog.Catalog
	engine   *cart.Engine
	ids      *order.IDSource
	checkout *order.Checkout
	history  *order.History
	screens  *screen.Switcher
	messages *template.Catalog

	mu      sync.Mutex
	started bool
	unsubs  []func()
}

// Option configures an App.
type Option func(*App)

// WithSettings replaces the default POS policy.
func WithSettings(s config.Settings) Option {
	return func(a *App) {
		a.settings = s
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(a *App) {
		if s != nil {
			a.spans = s
		}
	}
}

// WithArchive sets the order archive. The caller keeps ownership and must
// close it. By default an in-memory SQLite archive is opened and closed
// with the App.
func WithArchive(archive order.Archive) Option {
	return func(a *App) {
		a.archive = archive
	}
}

// WithNotifier sets where operator messages go.
func WithNotifier(n Notifier) Option {
	return func(a *App) {
		if n != nil {
			a.notifier = n
		}
	}
}

// WithConfirmer sets who answers confirmation prompts.
func WithConfirmer(c Confirmer) Option {
	return func(a *App) {
		if c != nil {
			a.confirmer = c
		}
	}
}

// WithPrinter sets the receipt printer.
func WithPrinter(p Printer) Option {
	return func(a *App) {
		if p != nil {
			a.printer = p
		}
	}
}

// WithPresenter sets the screen presenter.
func WithPresenter(p screen.Presenter) Option {
	return func(a *App) {
		a.presenter = p
	}
}

// WithView sets the view re-rendered on state changes.
func WithView(v View) Option {
	return func(a *App) {
		if v != nil {
			a.view = v
		}
	}
}

// WithClock overrides the time source for order ids, timestamps, history
// snapshots and the screen debounce.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithCatalog replaces the sample product catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *App) {
		if c != nil {
			a.catalog = c
		}
	}
}

// New builds an App. Nothing is loaded or registered until Start.
func New(opts ...Option) (*App, error) {
	a := &App{
		settings:  config.DefaultSettings(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
		now:       time.Now,
		notifier:  nopNotifier{},
		confirmer: alwaysConfirm{},
		printer:   nopPrinter{},
		view:      nopView{},
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	a.logger = observability.OrDefault(a.logger)
	if a.catalog == nil {
		a.catalog = catalog.Sample()
	}

	if a.archive == nil {
		archive, err := order.NewSQLiteArchive(order.MemoryDSN)
		if err != nil {
			return nil, fmt.Errorf("open order archive: %w", err)
		}
		a.archive = archive
		a.ownArchive = true
	}

	a.store = state.New(nil,
		state.WithDefaults(DefaultState),
		state.WithHistoryLimit(a.settings.HistoryLimit),
		state.WithLogger(a.logger),
		state.WithMetrics(a.metrics),
		state.WithClock(a.now),
	)
	a.router = router.New(
		router.WithLogger(a.logger),
		router.WithMetrics(a.metrics),
		router.WithSpanManager(a.spans),
		router.WithSearchClass(a.settings.SearchClass),
	)
	a.engine = cart.NewEngine(a.store,
		cart.WithPolicy(cart.PolicyFrom(a.settings)),
		cart.WithLogger(a.logger),
	)
	a.ids = order.NewIDSource(a.now)
	a.checkout = order.NewCheckout(a.store, a.engine,
		order.WithIDSource(a.ids),
		order.WithClock(a.now),
		order.WithLogger(a.logger),
		order.WithMetrics(a.metrics),
		order.WithSpanManager(a.spans),
	)

	history, err := order.NewHistory(a.store, a.archive,
		order.WithHistoryTaxRate(a.settings.HistoryTaxRate),
		order.WithHistoryLogger(a.logger),
	)
	if err != nil {
		a.closeArchive()
		return nil, fmt.Errorf("index orders: %w", err)
	}
	a.history = history

	a.screens = screen.NewSwitcher(a.store,
		screen.WithCooldown(a.settings.SwitchCooldown),
		screen.WithPresenter(a.presenter),
		screen.WithLogger(a.logger),
		screen.WithClock(a.now),
	)
	a.messages = template.NewCatalog(template.WithCurrency(a.settings.Currency))
	return a, nil
}

// Start loads the catalog and sample orders into the store, registers every
// handler and subscription and shows the current screen.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.started = true
	a.mu.Unlock()

	orders := order.SampleOrders(a.now())
	for _, rec := range orders {
		a.ids.Observe(rec.ID)
	}
	a.store.MergePatch(map[string]any{
		state.PathProducts:         a.catalog.Products(),
		state.PathCategories:       a.catalog.Categories(),
		state.PathExtraIngredients: a.catalog.Ingredients(),
		state.PathOrders:           orders,
	})

	a.registerHandlers()
	a.subscribeViews()

	if outcome := a.screens.Force(ctx, a.screens.Current()); outcome != screen.Switched {
		a.logger.Warn("initial screen not shown", slog.String("outcome", outcome.String()))
	}
	a.renderAll()
	return nil
}

// Close drops every handler and subscription and closes the archive if the
// App opened it.
func (a *App) Close() error {
	a.mu.Lock()
	unsubs := a.unsubs
	a.unsubs = nil
	a.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	a.history.Close()
	a.router.Close()
	a.store.Close()
	return a.closeArchive()
}

func (a *App) closeArchive() error {
	if !a.ownArchive {
		return nil
	}
	a.ownArchive = false
	return a.archive.Close()
}

// Store returns the state store.
func (a *App) Store() *state.Store { return a.store }

// Router returns the event router UI adapters dispatch into.
func (a *App) Router() *router.Router { return a.router }

// Cart returns the cart engine.
func (a *App) Cart() *cart.Engine { return a.engine }

// Catalog returns the product catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// History returns the order history.
func (a *App) History() *order.History { return a.history }

// Screens returns the screen switcher.
func (a *App) Screens() *screen.Switcher { return a.screens }

// Checkout returns the checkout service.
func (a *App) Checkout() *order.Checkout { return a.checkout }

// Messages returns the notification catalog.
func (a *App) Messages() *template.Catalog { return a.messages }

// VisibleProducts returns the products matching the current category and
// search query.
func (a *App) VisibleProducts() []catalog.Product {
	category, _ := state.GetAs[string](a.store, state.PathCurrentCategory)
	query, _ := state.GetAs[string](a.store, state.PathSearchQuery)
	return a.catalog.Filter(category, query)
}
