// Package service holds RecordService, the consumer of a DataProvider.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/bassista/go_records/internal/cache"
	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/metrics"
	"github.com/bassista/go_records/internal/provider"
	"github.com/bassista/go_records/internal/record"
)

// RecordReader is the read API handlers and background jobs depend on.
type RecordReader interface {
	GetRecords(ctx context.Context) ([]record.Record, error)
	PeekCached() []record.Record
	LastUpdate() int64
	Populated() bool
}

// RecordService fetches records from one injected provider and keeps the last
// successful result. The provider is fixed for the service's lifetime and is
// never closed by the service.
type RecordService struct {
	provider provider.DataProvider
	name     string
	store    cache.RecordStore

	// sem serializes fetch+store so concurrent GetRecords calls never overlap.
	sem chan struct{}
	now func() time.Time
}

// New creates a RecordService bound to p.
func New(p provider.DataProvider) (*RecordService, error) {
	if p == nil {
		return nil, errors.New("provider is nil")
	}
	return &RecordService{
		provider: p,
		name:     provider.Name(p),
		store:    cache.NewStore(),
		sem:      make(chan struct{}, 1),
		now:      time.Now,
	}, nil
}

// GetRecords fetches from the bound provider, stores the result on success and
// returns a copy of it. On failure the provider's error is returned unchanged and
// the cache keeps its previous content. Waiting for another in-flight call
// honours ctx.
func (s *RecordService) GetRecords(ctx context.Context) ([]record.Record, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-s.sem }()

	log := logger.WithComponent("record-service").WithField("provider", s.name)

	start := s.now()
	records, err := s.provider.FetchRecords(ctx)
	metrics.RecordFetch(s.name, err, time.Since(start))
	if err != nil {
		log.Warnf("fetch failed, keeping %d cached records: %v", s.store.Len(), err)
		return nil, err
	}

	s.store.Replace(records, s.now().UnixMilli())
	metrics.SetCachedRecords(s.name, len(records))
	log.Debugf("fetched %d records", len(records))

	return s.store.Snapshot(), nil
}

// PeekCached returns the last successfully fetched records without fetching.
// Before the first success it returns an empty slice.
func (s *RecordService) PeekCached() []record.Record {
	return s.store.Snapshot()
}

// LastUpdate returns the unix ms timestamp of the last successful fetch, 0 if none.
func (s *RecordService) LastUpdate() int64 {
	return s.store.GetLastUpdate()
}

// Populated reports whether at least one fetch has succeeded.
func (s *RecordService) Populated() bool {
	return s.store.IsPopulated()
}
