package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrLineNotFound indicates an index or product id with no cart line.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrQuantityFloor indicates a decrease on a line already at quantity 1.
	ErrQuantityFloor = errors.New("quantity already at minimum")

	// ErrExtraNotFound indicates a decrease of an extra the line does not have.
	ErrExtraNotFound = errors.New("extra not on line")

	// ErrUnknownSize indicates a size other than the policy's two sizes.
	ErrUnknownSize = errors.New("unknown size")
)

// LineError attaches the line index to a rejected mutation.
type LineError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("cart line %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}
