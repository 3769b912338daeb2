package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	appctx "github.com/bassista/go_records/internal/app"
	"github.com/bassista/go_records/internal/config"
	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/provider"
	"github.com/bassista/go_records/internal/server"
	"github.com/bassista/go_records/internal/service"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	provider string
	file     string
	endpoint string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "records",
		Short:         "Fetch records from interchangeable data providers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// stdout carries the command output
			logger.Logger.SetOutput(cmd.ErrOrStderr())
		},
	}

	root.AddCommand(newFetchCmd(), newServeCmd())
	return root
}

func newFetchCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch records once and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.Misc.LogLevel)

			pc := applyFetchFlags(cmd, cfg.Provider, opts)
			if err := pc.Validate(); err != nil {
				return err
			}
			return runFetch(cmd, pc)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "provider kind: local, file or remote (default from config)")
	cmd.Flags().StringVar(&opts.file, "file", "", "path of the JSON fixture for the file provider")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "URL of the remote provider")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", provider.DefaultRemoteTimeout, "timeout of the remote provider")
	return cmd
}

// applyFetchFlags overrides the configured provider with the flags actually set.
func applyFetchFlags(cmd *cobra.Command, pc config.ProviderConfig, opts *fetchOptions) config.ProviderConfig {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		pc.Kind = strings.ToLower(strings.TrimSpace(opts.provider))
	}
	if flags.Changed("file") {
		pc.FilePath = opts.file
	}
	if flags.Changed("endpoint") {
		pc.Endpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		pc.Timeout = opts.timeout
	}
	pc.Watch = false
	return pc
}

func runFetch(cmd *cobra.Command, pc config.ProviderConfig) error {
	p, err := provider.NewProviderFromConfig(pc)
	if err != nil {
		return fmt.Errorf("cannot init provider: %w", err)
	}
	svc, err := service.New(p)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := svc.GetRecords(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.Misc.LogLevel)

			app, err := appctx.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("cannot init app: %w", err)
			}
			defer app.Shutdown()

			return server.Run(app)
		},
	}
}
