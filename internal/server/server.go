// Package server assembles the gin engine and the graceful HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	"github.com/bassista/go_records/internal/api/middleware"
	route "github.com/bassista/go_records/internal/api/route"
	appctx "github.com/bassista/go_records/internal/app"
	"github.com/bassista/go_records/internal/config"
	"github.com/bassista/go_records/internal/logger"
	"github.com/gin-gonic/gin"

	"github.com/enrichman/httpgrace"
)

// Run warms the cache, starts the background watchers and serves the HTTP API
// until SIGTERM/SIGINT.
func Run(app *appctx.App) error {
	app.Warmup()
	if err := app.StartWatchers(); err != nil {
		return fmt.Errorf("cannot start watchers: %w", err)
	}

	gin.SetMode(app.Config.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := NewRouter(app)
	srv := createGraceHttpServer(app.BaseCtx, "main-server", app.Config.Server, r)

	logger.WithComponent("server").Infof("App will run on port: %d", app.Config.Server.Port)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", app.Config.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter builds the gin engine with the middleware chain and all routes.
func NewRouter(app *appctx.App) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.HoneybadgerMiddleware(app.Config.Misc.HoneybadgerAPIKey, app.Config.Misc.HoneybadgerEnv))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(app.Config.Server.CORSAllowedOrigins))

	route.SetupRoutes(r, app)
	return r
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
