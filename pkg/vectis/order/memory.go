package order

import (
	"fmt"
	"sync"
)

// MemoryArchive keeps records in a map.
type MemoryArchive struct {
	mu      sync.RWMutex
	records map[int64]Record
	closed  bool
}

// NewMemoryArchive creates an empty in-memory archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{records: make(map[int64]Record)}
}

// Put implements Archive.
func (a *MemoryArchive) Put(rec Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}
	a.records[rec.ID] = rec.Clone()
	return nil
}

// Get implements Archive.
func (a *MemoryArchive) Get(id int64) (Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return Record{}, ErrArchiveClosed
	}
	rec, ok := a.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

// List implements Archive.
func (a *MemoryArchive) List() ([]Record, error) {
	return a.Search("")
}

// UpdateStatus implements Archive.
func (a *MemoryArchive) UpdateStatus(id int64, status Status) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}
	rec, ok := a.records[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	rec.Status = status
	a.records[id] = rec
	return nil
}

// Search implements Archive.
func (a *MemoryArchive) Search(query string) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return nil, ErrArchiveClosed
	}
	out := make([]Record, 0, len(a.records))
	for _, rec := range a.records {
		if Matches(rec, query) {
			out = append(out, rec.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Reset implements Archive.
func (a *MemoryArchive) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}
	clear(a.records)
	return nil
}

// Close implements Archive.
func (a *MemoryArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.records = nil
	return nil
}
