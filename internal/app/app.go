package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_records/internal/config"
	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/provider"
	"github.com/bassista/go_records/internal/scheduler"
	"github.com/bassista/go_records/internal/service"
)

// Watchable is implemented by providers that can report changes to their source.
type Watchable interface {
	StartWatcher(ctx context.Context, onChange func()) error
}

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config   *config.Config
	Provider provider.DataProvider
	Records  service.RecordReader

	// Refresh is set by StartWatchers when data.refresh_interval > 0.
	Refresh *scheduler.RefreshScheduler

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, p provider.DataProvider, records service.RecordReader) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if p == nil {
		return nil, errors.New("provider is nil")
	}
	if records == nil {
		return nil, errors.New("record service is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:   cfg,
		Provider: p,
		Records:  records,
		BaseCtx:  ctx,
		Cancel:   cancel,
	}, nil
}

// NewFromConfig builds the provider selected by cfg, binds it to a RecordService
// and wraps both in an App.
func NewFromConfig(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	p, err := provider.NewProviderFromConfig(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("cannot init provider: %w", err)
	}
	svc, err := service.New(p)
	if err != nil {
		return nil, fmt.Errorf("cannot init record service: %w", err)
	}
	return New(cfg, p, svc)
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// Warmup performs the first fetch so the cache is populated before serving.
// A failure is logged, not fatal: the cache simply stays empty.
func (a *App) Warmup() {
	ctx, cancel := context.WithTimeout(a.BaseCtx, a.Config.Server.RequestTimeout)
	defer cancel()

	records, err := a.Records.GetRecords(ctx)
	if err != nil {
		logger.WithComponent("app").Warnf("initial fetch failed, starting with an empty cache: %v", err)
		return
	}
	logger.WithComponent("app").Infof("initial fetch loaded %d records from provider '%s'", len(records), provider.Name(a.Provider))
}

// StartWatchers starts the fixture watcher (file provider with provider.watch)
// and the refresh scheduler (data.refresh_interval > 0). Both stop with BaseCtx.
func (a *App) StartWatchers() error {
	if a.Config.Provider.Watch {
		w, ok := a.Provider.(Watchable)
		if !ok {
			logger.WithComponent("app").Warnf("provider '%s' cannot be watched, ignoring provider.watch", provider.Name(a.Provider))
		} else if err := w.StartWatcher(a.BaseCtx, a.reloadOnChange); err != nil {
			return fmt.Errorf("cannot start fixture watcher: %w", err)
		}
	}

	if a.Config.Data.RefreshInterval > 0 {
		a.Refresh = scheduler.NewRefreshScheduler(a.Records, a.Config.Data.RefreshInterval)
		a.Refresh.Start(a.BaseCtx)
	}
	return nil
}

func (a *App) reloadOnChange() {
	ctx, cancel := context.WithTimeout(a.BaseCtx, a.Config.Server.RequestTimeout)
	defer cancel()

	records, err := a.Records.GetRecords(ctx)
	if err != nil {
		logger.WithComponent("app").Errorf("reload after source change failed, keeping cached records: %v", err)
		return
	}
	logger.WithComponent("app").Infof("cache reloaded after source change: %d records", len(records))
}
