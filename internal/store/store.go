// Package store holds the in-memory Record Store.
package store

import "github.com/taxtracker/taxtracker/internal/model"

// Store is an ordered, append-only sequence of records that lives for the
// process lifetime. It is not safe for concurrent use; callers serialize
// access.
type Store struct {
	records []model.Record
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Append adds a record at the end.
func (s *Store) Append(r model.Record) {
	s.records = append(s.records, r)
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []model.Record {
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
