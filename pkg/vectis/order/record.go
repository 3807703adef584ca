package order

import (
	"strconv"
	"time"

	"github.com/randalmurphal/vectis/pkg/vectis/cart"
)

// Status is the kitchen status of an order.
type Status string

const (
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// DefaultCustomer names orders taken at the counter.
const DefaultCustomer = "Walk-in Customer"

// Record is a placed order. Items is a snapshot and never aliases the cart.
type Record struct {
	ID        int64     `json:"id"`
	Items     cart.Cart `json:"items"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Customer  string    `json:"customer"`
}

// Number is the display form of the order id.
func (r Record) Number() string {
	return strconv.FormatInt(r.ID, 10)
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := r
	out.Items = r.Items.Clone()
	return out
}

// List is the value stored at the "orders" path, oldest first.
type List []Record

// Clone returns a deep copy.
func (l List) Clone() List {
	out := make(List, len(l))
	for i, r := range l {
		out[i] = r.Clone()
	}
	return out
}

// CloneValue lets the state store snapshot order lists independently.
func (l List) CloneValue() any {
	return l.Clone()
}

// Find returns the index of the record with id, or -1.
func (l List) Find(id int64) int {
	for i, r := range l {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// NewestFirst returns a copy ordered by descending timestamp, then id.
func (l List) NewestFirst() List {
	out := l.Clone()
	sortNewestFirst(out)
	return out
}
