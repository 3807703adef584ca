package order

import "errors"

var (
	// ErrEmptyCart is returned by Checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound indicates an unknown order id.
	ErrNotFound = errors.New("order not found")

	// ErrArchiveClosed indicates use of a closed archive.
	ErrArchiveClosed = errors.New("order archive closed")

	// ErrInvalidStatus indicates a status outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNoSelection indicates an operation on the selected order when none is.
	ErrNoSelection = errors.New("no order selected")
)
