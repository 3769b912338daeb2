package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/record"
)

// Fetcher is the part of the record service the scheduler drives.
type Fetcher interface {
	GetRecords(ctx context.Context) ([]record.Record, error)
}

// RefreshScheduler re-fetches records on a fixed interval so the service cache
// stays warm. Failures are logged and counted; the cache keeps its last good
// content because the service never overwrites it on error.
//
// NOTE: no retry or backoff; the next tick is the retry.
type RefreshScheduler struct {
	fetcher  Fetcher
	interval time.Duration

	mu                  sync.Mutex
	consecutiveFailures int
	lastErr             error
}

func NewRefreshScheduler(fetcher Fetcher, interval time.Duration) *RefreshScheduler {
	return &RefreshScheduler{fetcher: fetcher, interval: interval}
}

// Start runs the refresh loop until ctx is cancelled.
// Returns a channel that is closed when the loop has exited.
func (s *RefreshScheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	logger.WithComponent("refresh").Debugf("starting refresh scheduler with interval: %v", s.interval)
	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("refresh").Info("refresh scheduler stopped")
				return
			case <-ticker.C:
				logger.WithComponent("refresh").Tracef("refresh scheduler tick")
				_ = s.RefreshNow(ctx)
			}
		}
	}()
	return done
}

// RefreshNow performs one fetch bounded by the scheduler interval.
func (s *RefreshScheduler) RefreshNow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		logger.WithComponent("refresh").Debugf("refresh cancelled: %v", err)
		return err
	}

	tickCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	records, err := s.fetcher.GetRecords(tickCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.consecutiveFailures++
		s.lastErr = err
		logger.WithComponent("refresh").Errorf("refresh failed (%d in a row): %v", s.consecutiveFailures, err)
		return err
	}
	if s.consecutiveFailures > 0 {
		logger.WithComponent("refresh").Infof("refresh recovered after %d failures", s.consecutiveFailures)
	}
	s.consecutiveFailures = 0
	s.lastErr = nil
	logger.WithComponent("refresh").Debugf("refreshed %d records", len(records))
	return nil
}

// ConsecutiveFailures returns how many refreshes failed since the last success.
func (s *RefreshScheduler) ConsecutiveFailures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveFailures
}

// LastError returns the error of the most recent refresh, nil after a success.
func (s *RefreshScheduler) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
