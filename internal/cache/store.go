package cache

import (
	"sync"

	"github.com/bassista/go_records/internal/record"
)

// Store keeps an in-memory copy of the last successfully fetched records.
type Store struct {
	mu         sync.RWMutex
	records    []record.Record
	populated  bool  // false until the first Replace
	lastUpdate int64 // unix ms of the last Replace
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{records: []record.Record{}}
}

// Snapshot returns a copy of the cached records; never nil.
func (s *Store) Snapshot() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return record.Clone(s.records)
}

// Replace swaps the cached records and records ts as the last update.
func (s *Store) Replace(records []record.Record, ts int64) {
	cloned := record.Clone(records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cloned
	s.lastUpdate = ts
	s.populated = true
}

// GetLastUpdate returns the timestamp passed to the last Replace, 0 if none.
func (s *Store) GetLastUpdate() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// IsPopulated reports whether Replace has been called at least once.
func (s *Store) IsPopulated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.populated
}

// Len returns the number of cached records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
