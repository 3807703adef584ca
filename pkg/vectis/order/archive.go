package order

import (
	"cmp"
	"slices"
	"strings"
)

// Archive indexes placed orders for lookup and search.
// Implementations must be safe for concurrent use.
type Archive interface {
	// Put stores a record, replacing any record with the same id.
	Put(rec Record) error

	// Get returns ErrNotFound for unknown ids.
	Get(id int64) (Record, error)

	// List returns every record, newest first.
	List() ([]Record, error)

	// UpdateStatus returns ErrNotFound for unknown ids.
	UpdateStatus(id int64, status Status) error

	// Search matches query case-insensitively against the order number,
	// the customer and item names. Results are newest first; an empty query
	// returns everything.
	Search(query string) ([]Record, error)

	// Reset removes every record.
	Reset() error

	// Close releases resources. Later calls return ErrArchiveClosed.
	Close() error
}

// Matches reports whether rec satisfies a search query.
func Matches(rec Record, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(rec.Number(), q) || strings.Contains(strings.ToLower(rec.Customer), q) {
		return true
	}
	for _, l := range rec.Items {
		if strings.Contains(strings.ToLower(l.Name), q) {
			return true
		}
	}
	return false
}

func sortNewestFirst(recs []Record) {
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
