package route

import (
	"github.com/bassista/go_records/internal/api/controller"
	"github.com/bassista/go_records/internal/app"
	"github.com/bassista/go_records/internal/metrics"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, appCtx *app.App) {
	var refresh controller.RefreshStatus
	if appCtx.Refresh != nil {
		refresh = appCtx.Refresh
	}
	r.GET("/health", controller.NewHealthController(refresh).Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	publicRouter := r.Group("")

	// All Public APIs
	timeout := appCtx.Config.Server.RequestTimeout

	NewRecordRouter(timeout, publicRouter, appCtx.Records)
	NewConfigurationRouter(timeout, publicRouter, appCtx.Config)
}
