package controller

import (
	"net/http"

	"github.com/bassista/go_records/internal/config"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse represents the configuration response structure for the API.
type ConfigurationResponse struct {
	ProviderKind       string `json:"providerKind"`
	Endpoint           string `json:"endpoint,omitempty"`
	FilePath           string `json:"filePath,omitempty"`
	Watch              bool   `json:"watch"`
	RefreshIntervalSec int    `json:"refreshIntervalSec"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	config *config.Config
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(cfg *config.Config) *ConfigurationController {
	return &ConfigurationController{
		config: cfg,
	}
}

// GetConfiguration returns which record source is wired in and how it refreshes.
// Only the fields relevant to the configured provider kind are filled in.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	p := cc.config.Provider
	response := ConfigurationResponse{
		ProviderKind:       p.Kind,
		RefreshIntervalSec: int(cc.config.Data.RefreshInterval.Seconds()),
	}
	switch p.Kind {
	case config.ProviderKindFile:
		response.FilePath = p.FilePath
		response.Watch = p.Watch
	case config.ProviderKindRemote:
		response.Endpoint = p.Endpoint
	}
	c.JSON(http.StatusOK, response)
}
