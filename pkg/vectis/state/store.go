package state

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/randalmurphal/vectis/pkg/vectis/observability"
)

// DefaultHistoryLimit is the number of snapshots kept for Undo.
const DefaultHistoryLimit = 50

// Change describes one notification.
type Change struct {
	// Path is the mutated path. Undo and Reset report Wildcard.
	Path string
	// Value is the value that was written (nil for undo, reset and patches
	// seen by wildcard listeners).
	Value any
	// Current is the value now at the listener's path. Wildcard listeners
	// receive a shallow copy of the whole tree.
	Current any
	// Previous is the full tree as it was before the mutation.
	Previous map[string]any
}

// Listener receives change notifications.
type Listener func(ch Change) error

// Unsubscribe removes a subscription. Calling it more than once is harmless.
type Unsubscribe func()

// Snapshot is one undo history entry.
type Snapshot struct {
	Timestamp time.Time
	State     map[string]any
}

type subscription struct {
	id       uint64
	listener Listener
}

// Store is the application state container.
type Store struct {
	mu        sync.Mutex
	state     map[string]any
	history   []Snapshot
	listeners map[string][]subscription
	nextID    uint64

	defaults func() map[string]any
	limit    int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults sets the factory for the default tree used by New and Reset.
func WithDefaults(fn func() map[string]any) Option {
	return func(s *Store) {
		if fn != nil {
			s.defaults = fn
		}
	}
}

// WithHistoryLimit bounds the undo history. Values below 1 are ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger. Default slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store holding the default tree with initial merged over its
// top-level keys.
func New(initial map[string]any, opts ...Option) *Store {
	s := &Store{
		listeners: make(map[string][]subscription),
		defaults:  DefaultState,
		limit:     DefaultHistoryLimit,
		metrics:   observability.NoopMetrics{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = observability.OrDefault(s.logger)

	s.state = s.defaults()
	for k, v := range initial {
		s.state[k] = v
	}
	return s
}

// Get returns the value at path. An empty path returns a shallow copy of the
// whole tree. Missing segments yield (nil, false); Get never panics.
func (s *Store) Get(path string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(path)
}

func (s *Store) getLocked(path string) (any, bool) {
	if path == "" {
		return shallowCopy(s.state), true
	}
	parts, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	return getNested(s.state, parts)
}

// GetAs returns the value at path asserted to T.
// It reports false when the path is missing or holds another type.
func GetAs[T any](s *Store, path string) (T, bool) {
	var zero T
	v, ok := s.Get(path)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// SetPath writes value at path, creating intermediate containers.
func (s *Store) SetPath(path string, value any) error {
	parts, err := splitPath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.recordLocked()
	setNested(s.state, parts, value)
	historyLen := len(s.history)
	s.mu.Unlock()

	s.metrics.RecordMutation(context.Background(), path)
	observability.LogStateChange(s.logger, path, historyLen)

	s.notify(path, value, prev)
	s.notifyWildcard(path, value, prev)
	return nil
}

// MergePatch shallow-merges patch into the top-level keys of the tree.
// A Wildcard key is dropped.
func (s *Store) MergePatch(patch map[string]any) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		if k == Wildcard {
			s.logger.Warn("wildcard key dropped from patch")
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	s.mu.Lock()
	prev := s.recordLocked()
	for _, k := range keys {
		s.state[k] = patch[k]
	}
	historyLen := len(s.history)
	s.mu.Unlock()

	for _, k := range keys {
		s.metrics.RecordMutation(context.Background(), k)
		observability.LogStateChange(s.logger, k, historyLen)
		s.notify(k, patch[k], prev)
	}
	s.notifyWildcard(Wildcard, nil, prev)
}

// Update reads the value at path, applies fn and writes the result back with
// SetPath. fn receives nil when the path is missing.
func (s *Store) Update(path string, fn func(current any) any) error {
	current, _ := s.Get(path)
	return s.SetPath(path, fn(current))
}

// Subscribe registers listener for mutations of exactly path.
// Use Wildcard to observe every change.
func (s *Store) Subscribe(path string, listener Listener) Unsubscribe {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners[path] = append(s.listeners[path], subscription{id: id, listener: listener})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.listeners[path]
		for i, sub := range subs {
			if sub.id == id {
				s.listeners[path] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(s.listeners[path]) == 0 {
			delete(s.listeners, path)
		}
	}
}

// Undo restores the most recent snapshot and notifies wildcard listeners.
// It reports false when there is no history.
func (s *Store) Undo() bool {
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return false
	}
	last := s.history[len(s.history)-1]
	s.history[len(s.history)-1] = Snapshot{}
	s.history = s.history[:len(s.history)-1]
	replaced := s.state
	s.state = last.State
	s.mu.Unlock()

	observability.LogStateChange(s.logger, Wildcard, s.HistoryLen())
	s.notifyWildcard(Wildcard, nil, replaced)
	return true
}

// Reset restores the default tree, clears history and notifies wildcard
// listeners.
func (s *Store) Reset() {
	s.mu.Lock()
	replaced := s.state
	s.state = s.defaults()
	s.history = nil
	s.mu.Unlock()

	observability.LogStateChange(s.logger, Wildcard, 0)
	s.notifyWildcard(Wildcard, nil, replaced)
}

// HistoryLen returns the number of undo snapshots held.
func (s *Store) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// History returns the snapshot timestamps, oldest first.
func (s *Store) History() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Time, len(s.history))
	for i, snap := range s.history {
		out[i] = snap.Timestamp
	}
	return out
}

// Close drops every subscription. The store stays usable but notifies nobody.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = make(map[string][]subscription)
}

// recordLocked snapshots the current tree into history and returns the copy.
// Oldest entries are evicted once the limit is exceeded.
func (s *Store) recordLocked() map[string]any {
	snap := copyTree(s.state)
	s.history = append(s.history, Snapshot{Timestamp: s.now(), State: snap})
	if over := len(s.history) - s.limit; over > 0 {
		clear(s.history[:over])
		s.history = s.history[over:]
	}
	return snap
}

func (s *Store) listenersFor(path string) []subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.listeners[path]
	if len(subs) == 0 {
		return nil
	}
	out := make([]subscription, len(subs))
	copy(out, subs)
	return out
}

func (s *Store) notify(path string, value any, prev map[string]any) {
	for _, sub := range s.listenersFor(path) {
		current, _ := s.Get(path)
		s.call(path, sub.listener, Change{
			Path:     path,
			Value:    value,
			Current:  current,
			Previous: prev,
		})
	}
}

func (s *Store) notifyWildcard(path string, value any, prev map[string]any) {
	for _, sub := range s.listenersFor(Wildcard) {
		current, _ := s.Get("")
		s.call(Wildcard, sub.listener, Change{
			Path:     path,
			Value:    value,
			Current:  current,
			Previous: prev,
		})
	}
}

// call runs one listener, converting errors and panics into a logged
// ListenerError.
func (s *Store) call(path string, listener Listener, ch Change) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return listener(ch)
	}()
	if err == nil {
		return
	}

	lerr := &ListenerError{Path: path, Err: err}
	s.metrics.RecordListenerError(context.Background(), path)
	observability.LogListenerError(s.logger, path, lerr)
}
