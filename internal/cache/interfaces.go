package cache

import "github.com/bassista/go_records/internal/record"

// RecordStore is the cache contract the record service owns.
type RecordStore interface {
	Snapshot() []record.Record
	Replace(records []record.Record, ts int64)
	GetLastUpdate() int64
	IsPopulated() bool
	Len() int
}
