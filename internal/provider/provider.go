// Package provider holds the record sources the service can be wired to.
// Every source implements DataProvider; callers never depend on a concrete type.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_records/internal/record"
)

// DataProvider produces an ordered list of records from one concrete source.
// A failed fetch always returns a *SourceUnavailableError.
type DataProvider interface {
	FetchRecords(ctx context.Context) ([]record.Record, error)
}

// ErrSourceUnavailable matches any *SourceUnavailableError under errors.Is.
var ErrSourceUnavailable = errors.New("source unavailable")

// SourceUnavailableError reports that a provider could not produce records:
// missing or malformed fixture, non-2xx response, network failure or timeout.
type SourceUnavailableError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: source unavailable: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: source unavailable: %s", e.Provider, e.Reason)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

func unavailable(provider, reason string, err error) *SourceUnavailableError {
	return &SourceUnavailableError{Provider: provider, Reason: reason, Err: err}
}

// Name returns a short identifier for p, used in logs and metrics.
func Name(p DataProvider) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
