package router

import (
	"github.com/google/uuid"
)

// Kind is the raw input event type.
type Kind string

const (
	KindClick   Kind = "click"
	KindInput   Kind = "input"
	KindChange  Kind = "change"
	KindSubmit  Kind = "submit"
	KindKeydown Kind = "keydown"
)

// Event is a neutral description of one raw input event.
type Event struct {
	ID     string
	Kind   Kind
	Target *Element

	// Key and modifier flags are set for keydown events.
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool

	defaultPrevented bool
}

// NewEvent creates an event with a fresh ID.
func NewEvent(kind Kind, target *Element) *Event {
	return &Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Target: target,
	}
}

// NewKeyEvent creates a keydown event.
func NewKeyEvent(key string, ctrl, alt, shift bool) *Event {
	evt := NewEvent(KindKeydown, nil)
	evt.Key = key
	evt.Ctrl = ctrl
	evt.Alt = alt
	evt.Shift = shift
	return evt
}

// PreventDefault marks the event's default behavior as suppressed.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Payload is what a handler receives.
type Payload struct {
	Channel string
	Target  *Element
	Event   *Event

	// Data is a copy of the action element's data attributes.
	Data map[string]string
	// Value is the input's current value for input and change channels.
	Value string
	// Query is set on search:input.
	Query string
	// FormData holds the submitted form fields.
	FormData map[string]string
	// Key is set for keyboard shortcuts.
	Key string
}
