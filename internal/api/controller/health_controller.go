package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshStatus is the view of the periodic refresh reported by /health.
type RefreshStatus interface {
	ConsecutiveFailures() int
	LastError() error
}

// RefreshHealth is the refresh section of the health response.
type RefreshHealth struct {
	ConsecutiveFailures int    `json:"consecutiveFailures"`
	LastError           string `json:"lastError,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Message string         `json:"message"`
	Refresh *RefreshHealth `json:"refresh,omitempty"`
}

// HealthController reports liveness. Refresh failures are reported but never
// turn the service unhealthy; the cache keeps serving its last good records.
type HealthController struct {
	refresh RefreshStatus
}

// NewHealthController creates a HealthController. refresh may be nil when no
// periodic refresh runs.
func NewHealthController(refresh RefreshStatus) *HealthController {
	return &HealthController{refresh: refresh}
}

// Health handles GET /health.
func (hc *HealthController) Health(c *gin.Context) {
	response := HealthResponse{Message: "UP"}
	if hc.refresh != nil {
		response.Refresh = &RefreshHealth{ConsecutiveFailures: hc.refresh.ConsecutiveFailures()}
		if err := hc.refresh.LastError(); err != nil {
			response.Refresh.LastError = err.Error()
		}
	}
	c.JSON(http.StatusOK, response)
}
