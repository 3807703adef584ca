// Package screen switches the terminal between its two main screens with a
// debounce on rapid requests.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/randalmurphal/vectis/pkg/vectis/config"
	"github.com/randalmurphal/vectis/pkg/vectis/observability"
	"github.com/randalmurphal/vectis/pkg/vectis/state"
)

// Screen names.
const (
	OrderCreation = "order-creation"
	OrdersList    = "orders-list"
)

// ErrTargetMissing is returned by presenters whose screen container is absent.
var ErrTargetMissing = errors.New("screen container missing")

// Presenter makes a screen visible.
type Presenter interface {
	Show(ctx context.Context, screen string) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, screen string) error

// Show implements Presenter.
func (f PresenterFunc) Show(ctx context.Context, screen string) error {
	return f(ctx, screen)
}

// Outcome reports what a switch request did.
type Outcome int

const (
	// Switched means the screen changed.
	Switched Outcome = iota
	// AlreadyActive means the requested screen was already current.
	AlreadyActive
	// Dropped means the request came too soon after the last accepted one.
	Dropped
	// Abandoned means the presenter failed; state is unchanged.
	Abandoned
)

func (o Outcome) String() string {
	switch o {
	case Switched:
		return "switched"
	case AlreadyActive:
		return "already-active"
	case Dropped:
		return "dropped"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Switcher applies screen switch requests to ui.currentScreen.
type Switcher struct {
	store     *state.Store
	presenter Presenter
	cooldown  time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	limiter  *rate.Limiter
	accepted time.Time
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithCooldown sets the minimum interval between accepted requests.
func WithCooldown(d time.Duration) Option {
	return func(s *Switcher) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

// WithPresenter sets the presenter asked to show each new screen.
func WithPresenter(p Presenter) Option {
	return func(s *Switcher) {
		s.presenter = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Switcher) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for the debounce.
func WithClock(now func() time.Time) Option {
	return func(s *Switcher) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSwitcher creates a Switcher writing to store.
func NewSwitcher(store *state.Store, opts ...Option) *Switcher {
	s := &Switcher{
		store:    store,
		cooldown: config.DefaultSettings().SwitchCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = observability.OrDefault(s.logger)
	// One switch per cooldown, no bursting.
	s.limiter = rate.NewLimiter(rate.Every(s.cooldown), 1)
	return s
}

// Current returns the current screen.
func (s *Switcher) Current() string {
	cur, _ := state.GetAs[string](s.store, state.PathCurrentScreen)
	return cur
}

// Request switches to screen unless it is already current or the previous
// accepted request was less than the cooldown ago. Dropped requests are not
// queued.
func (s *Switcher) Request(ctx context.Context, screen string) Outcome {
	from := s.Current()
	if from == screen {
		return AlreadyActive
	}

	s.mu.Lock()
	now := s.now()
	if !s.limiter.AllowN(now, 1) {
		since := now.Sub(s.accepted)
		s.mu.Unlock()
		observability.LogScreenDropped(s.logger, screen, since)
		return Dropped
	}
	s.accepted = now
	s.mu.Unlock()

	return s.apply(ctx, from, screen)
}

// Force switches without the debounce, e.g. for the first render.
func (s *Switcher) Force(ctx context.Context, screen string) Outcome {
	return s.apply(ctx, s.Current(), screen)
}

func (s *Switcher) apply(ctx context.Context, from, to string) Outcome {
	if s.presenter != nil {
		if err := s.presenter.Show(ctx, to); err != nil {
			observability.LogCollaboratorMissing(s.logger, "switch screen to "+to, err)
			return Abandoned
		}
	}
	if err := s.store.SetPath(state.PathCurrentScreen, to); err != nil {
		observability.LogCollaboratorMissing(s.logger, "switch screen to "+to, err)
		return Abandoned
	}
	observability.LogScreenSwitch(s.logger, from, to)
	return Switched
}
