// Package record defines the flat value exchanged between providers and the record service.
package record

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeID = errors.New("record id must not be negative")
	ErrEmptyTitle = errors.New("record title must not be empty")
)

// Record is a single post-like entry. OwnerID references an owner entity
// that lives outside this module.
type Record struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"userId"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// New builds a validated Record.
func New(id, ownerID int64, title, body string) (Record, error) {
	r := Record{ID: id, OwnerID: ownerID, Title: title, Body: body}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks the field constraints every provider must honour.
func (r Record) Validate() error {
	if r.ID < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeID, r.ID)
	}
	if r.Title == "" {
		return fmt.Errorf("%w (id %d)", ErrEmptyTitle, r.ID)
	}
	return nil
}

// Clone copies records into a new slice. A nil or empty input yields an empty, non-nil slice.
func Clone(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
