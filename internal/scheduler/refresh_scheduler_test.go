package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bassista/go_records/internal/record"
)

// MockFetcher implements Fetcher for testing
type MockFetcher struct {
	mu    sync.Mutex
	calls int
	errs  []error // consumed in order; nil entries mean success
	delay time.Duration
}

func (m *MockFetcher) GetRecords(ctx context.Context) ([]record.Record, error) {
	m.mu.Lock()
	m.calls++
	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return []record.Record{{ID: 1, Title: "t"}}, nil
}

// Count returns the number of fetches in a thread-safe manner.
func (m *MockFetcher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNewRefreshScheduler(t *testing.T) {
	s := NewRefreshScheduler(&MockFetcher{}, 30*time.Second)

	if s == nil {
		t.Fatal("expected scheduler to be created")
	}
	if s.ConsecutiveFailures() != 0 {
		t.Errorf("expected 0 failures, got %d", s.ConsecutiveFailures())
	}
}

func TestRefreshScheduler_PeriodicRefresh(t *testing.T) {
	fetcher := &MockFetcher{}
	s := NewRefreshScheduler(fetcher, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := s.Start(ctx)

	time.Sleep(110 * time.Millisecond)
	cancel()
	<-done

	if fetcher.Count() < 2 {
		t.Errorf("expected at least 2 refreshes, got %d", fetcher.Count())
	}
}

func TestRefreshScheduler_StopsOnCancel(t *testing.T) {
	fetcher := &MockFetcher{}
	s := NewRefreshScheduler(fetcher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := s.Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	count := fetcher.Count()
	time.Sleep(50 * time.Millisecond)
	if fetcher.Count() != count {
		t.Error("expected no refreshes after stop")
	}
}

func TestRefreshScheduler_RefreshNow_TracksFailures(t *testing.T) {
	boom := errors.New("source unavailable")
	fetcher := &MockFetcher{errs: []error{boom, boom, nil}}
	s := NewRefreshScheduler(fetcher, time.Second)
	ctx := context.Background()

	if err := s.RefreshNow(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := s.RefreshNow(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s.ConsecutiveFailures() != 2 {
		t.Errorf("expected 2 failures, got %d", s.ConsecutiveFailures())
	}
	if !errors.Is(s.LastError(), boom) {
		t.Errorf("expected last error boom, got %v", s.LastError())
	}

	if err := s.RefreshNow(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ConsecutiveFailures() != 0 {
		t.Errorf("expected failures reset, got %d", s.ConsecutiveFailures())
	}
	if s.LastError() != nil {
		t.Errorf("expected nil last error, got %v", s.LastError())
	}
}

func TestRefreshScheduler_RefreshNow_CancelledContext(t *testing.T) {
	fetcher := &MockFetcher{}
	s := NewRefreshScheduler(fetcher, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.RefreshNow(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if fetcher.Count() != 0 {
		t.Errorf("expected no fetch, got %d", fetcher.Count())
	}
}

func TestRefreshScheduler_RefreshNow_BoundedByInterval(t *testing.T) {
	fetcher := &MockFetcher{delay: time.Second}
	s := NewRefreshScheduler(fetcher, 30*time.Millisecond)

	start := time.Now()
	err := s.RefreshNow(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("refresh was not bounded by the interval: %v", time.Since(start))
	}
}
