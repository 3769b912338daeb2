package main

import (
	appctx "github.com/bassista/go_records/internal/app"
	"github.com/bassista/go_records/internal/config"
	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	logLevel := logger.SetLevel(cfg.Misc.LogLevel)
	logger.WithComponent("main").Debugf("log level set to: %s", logLevel.String())
	logger.WithComponent("main").Infof("Record provider: %s", cfg.Provider.Kind)

	app, err := appctx.NewFromConfig(cfg)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := server.Run(app); err != nil {
		logger.WithComponent("main").Fatal(err)
	}
}
