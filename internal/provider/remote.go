package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/record"
	"golang.org/x/time/rate"
)

const (
	DefaultRemoteTimeout = 10 * time.Second
	maxResponseBytes     = 10 << 20
)

// HTTPDoer is the part of *http.Client the remote provider needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteProvider fetches records with an HTTP GET against a JSON endpoint.
type RemoteProvider struct {
	endpoint string
	timeout  time.Duration
	client   HTTPDoer
	limiter  *rate.Limiter
}

// RemoteOption customizes a RemoteProvider.
type RemoteOption func(*RemoteProvider)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client HTTPDoer) RemoteOption {
	return func(p *RemoteProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithRateLimit caps outgoing requests to limit per second with the given burst.
// A non-positive limit disables limiting.
func WithRateLimit(limit float64, burst int) RemoteOption {
	return func(p *RemoteProvider) {
		if limit <= 0 {
			p.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

// NewRemoteProvider creates a provider for endpoint. A non-positive timeout
// falls back to DefaultRemoteTimeout.
func NewRemoteProvider(endpoint string, timeout time.Duration, opts ...RemoteOption) (*RemoteProvider, error) {
	if endpoint == "" {
		return nil, errors.New("remote endpoint is required")
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	p := &RemoteProvider{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *RemoteProvider) Name() string { return "remote" }

// FetchRecords performs one GET round trip. The provider's timeout bounds the
// whole exchange, including waiting on the rate limiter and reading the body.
func (p *RemoteProvider) FetchRecords(parent context.Context) ([]record.Record, error) {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	log := logger.WithComponent("remote-provider")

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, unavailable(p.Name(), "rate limiter", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return nil, unavailable(p.Name(), "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable(p.Name(), p.abortReason(parent, "request"), err)
		}
		return nil, unavailable(p.Name(), "request failed", err)
	}
	defer resp.Body.Close()

	log.Debugf("GET %s -> %d in %v", p.endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, unavailable(p.Name(), fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	records, err := decodeRecords(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable(p.Name(), p.abortReason(parent, "response"), err)
		}
		return nil, unavailable(p.Name(), "malformed response", err)
	}
	return records, nil
}

// abortReason tells the provider's own timeout apart from the caller's
// deadline or cancellation.
func (p *RemoteProvider) abortReason(parent context.Context, stage string) string {
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return stage + " cancelled by caller"
	case errors.Is(parent.Err(), context.DeadlineExceeded):
		return stage + " hit the caller's deadline"
	default:
		return fmt.Sprintf("%s timed out after %v", stage, p.timeout)
	}
}
