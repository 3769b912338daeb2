package provider

import (
	"fmt"

	"github.com/bassista/go_records/internal/config"
)

// NewProviderFromConfig creates the DataProvider selected by cfg.Kind.
// An empty kind selects the local fixture.
func NewProviderFromConfig(cfg config.ProviderConfig) (DataProvider, error) {
	switch cfg.Kind {
	case config.ProviderKindLocal, "":
		return NewLocalFixtureProvider(), nil
	case config.ProviderKindFile:
		p, err := NewFileFixtureProvider(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderKindRemote:
		p, err := NewRemoteProvider(cfg.Endpoint, cfg.Timeout, WithRateLimit(cfg.RateLimit, cfg.RateBurst))
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s (supported: %s, %s, %s)",
			cfg.Kind, config.ProviderKindLocal, config.ProviderKindFile, config.ProviderKindRemote)
	}
}
