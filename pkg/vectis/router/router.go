package router

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/randalmurphal/vectis/pkg/vectis/observability"
)

// DefaultSearchClass marks inputs that also emit search:input.
const DefaultSearchClass = "vect-search-input"

// ChannelSearch carries search box input as Payload.Query.
const ChannelSearch = "search:input"

// Handler handles one channel emission.
type Handler func(ctx context.Context, p *Payload) error

// Middleware wraps a handler.
type Middleware func(next Handler) Handler

// Unsubscribe removes a registration. Calling it more than once is harmless.
type Unsubscribe func()

type entry struct {
	id      uint64
	handler Handler
}

type keyBinding struct {
	key  string
	opts KeyOptions
	entry
}

// Router classifies input events into channels and dispatches them.
type Router struct {
	mu         sync.Mutex
	channels   map[string][]entry
	direct     map[Kind]map[*Element][]entry
	keys       []keyBinding
	middleware []Middleware
	nextID     uint64

	searchClass string
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
	onError     func(channel string, err error)
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Router) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used for Dispatch spans.
func WithSpanManager(s observability.SpanManager) Option {
	return func(r *Router) {
		if s != nil {
			r.spans = s
		}
	}
}

// WithSearchClass overrides the class that marks search inputs.
func WithSearchClass(class string) Option {
	return func(r *Router) {
		if class != "" {
			r.searchClass = class
		}
	}
}

// OnError sets a hook called for every failed handler, after logging.
func OnError(fn func(channel string, err error)) Option {
	return func(r *Router) {
		r.onError = fn
	}
}

// New creates a Router.
func New(opts ...Option) *Router {
	r := &Router{
		channels:    make(map[string][]entry),
		direct:      make(map[Kind]map[*Element][]entry),
		searchClass: DefaultSearchClass,
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = observability.OrDefault(r.logger)
	return r
}

// Use adds middleware that applies to subsequently registered handlers.
func (r *Router) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// newEntryLocked wraps h in the current middleware chain.
// The first middleware added is the outermost.
func (r *Router) newEntryLocked(h Handler) entry {
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}
	r.nextID++
	return entry{id: r.nextID, handler: h}
}

// On registers h for channel.
func (r *Router) On(channel string, h Handler) Unsubscribe {
	r.mu.Lock()
	e := r.newEntryLocked(h)
	r.channels[channel] = append(r.channels[channel], e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.channels[channel] = removeEntry(r.channels[channel], e.id)
		if len(r.channels[channel]) == 0 {
			delete(r.channels, channel)
		}
	}
}

// Off removes every handler registered for channel.
func (r *Router) Off(channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, channel)
}

// OnClick registers h for click:<selector>, where selector is ".class" or "#id".
func (r *Router) OnClick(selector string, h Handler) Unsubscribe {
	return r.On(string(KindClick)+":"+selector, h)
}

// OnInput registers h for input:<selector>.
func (r *Router) OnInput(selector string, h Handler) Unsubscribe {
	return r.On(string(KindInput)+":"+selector, h)
}

// OnChange registers h for change:<selector>.
func (r *Router) OnChange(selector string, h Handler) Unsubscribe {
	return r.On(string(KindChange)+":"+selector, h)
}

// OnAction registers h for action:<name>.
func (r *Router) OnAction(name string, h Handler) Unsubscribe {
	return r.On("action:"+name, h)
}

// OnSearch registers h for search:input.
func (r *Router) OnSearch(h Handler) Unsubscribe {
	return r.On(ChannelSearch, h)
}

// Emit runs every handler registered for channel and returns how many ran.
// A nil payload is allowed.
func (r *Router) Emit(ctx context.Context, channel string, p *Payload) int {
	handlers := r.handlersFor(channel)
	if len(handlers) == 0 {
		return 0
	}

	var pl Payload
	if p != nil {
		pl = *p
	}
	pl.Channel = channel

	for _, e := range handlers {
		r.run(ctx, channel, e.handler, &pl)
	}
	return len(handlers)
}

// Close clears every registry. The router stays usable.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = make(map[string][]entry)
	r.direct = make(map[Kind]map[*Element][]entry)
	r.keys = nil
}

func (r *Router) handlersFor(channel string) []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entry(nil), r.channels[channel]...)
}

// hasLive reports whether channel has at least one handler.
func (r *Router) hasLive(channel string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels[channel]) > 0
}

// run invokes one handler, isolating errors and panics.
func (r *Router) run(ctx context.Context, channel string, h Handler, p *Payload) {
	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = &PanicError{Value: rec}
			}
		}()
		return h(ctx, p)
	}()
	if err == nil {
		return
	}

	herr := &HandlerError{Channel: channel, Err: err}
	r.metrics.RecordHandlerError(ctx, channel)
	observability.LogHandlerError(r.logger, channel, herr)
	if r.onError != nil {
		r.onError(channel, herr)
	}
}

func removeEntry(entries []entry, id uint64) []entry {
	for i, e := range entries {
		if e.id == id {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}

func selectorChannel(kind Kind, prefix, name string) string {
	var b strings.Builder
	b.Grow(len(kind) + len(prefix) + len(name) + 1)
	b.WriteString(string(kind))
	b.WriteByte(':')
	b.WriteString(prefix)
	b.WriteString(name)
	return b.String()
}
