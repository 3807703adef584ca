package state

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates an empty path or a path with an empty segment.
var ErrInvalidPath = errors.New("invalid state path")

// ListenerError wraps a failure raised by a listener during notification.
type ListenerError struct {
	// Path is the subscription path of the failing listener.
	Path string
	// Err is the returned error or the recovered panic.
	Err error
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("state listener %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
