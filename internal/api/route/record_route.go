package route

import (
	"time"

	"github.com/bassista/go_records/internal/api/controller"
	"github.com/bassista/go_records/internal/api/middleware"
	"github.com/bassista/go_records/internal/service"
	"github.com/gin-gonic/gin"
)

// NewRecordRouter sets up record routes. Only the fetching route carries the
// request timeout; the cached view never blocks.
func NewRecordRouter(timeout time.Duration, group *gin.RouterGroup, records service.RecordReader) {
	rc := controller.NewRecordController(records)

	group.GET("records", middleware.RequestTimeout(timeout), rc.GetRecords)
	group.GET("records/cached", rc.GetCachedRecords)
}
