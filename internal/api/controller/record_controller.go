package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/bassista/go_records/internal/logger"
	"github.com/bassista/go_records/internal/provider"
	"github.com/bassista/go_records/internal/record"
	"github.com/bassista/go_records/internal/service"
	"github.com/gin-gonic/gin"
)

// CachedRecordsResponse is the body of GET /records/cached.
type CachedRecordsResponse struct {
	Records    []record.Record `json:"records"`
	Populated  bool            `json:"populated"`
	LastUpdate int64           `json:"lastUpdate"`
}

// RecordController handles record-related HTTP endpoints.
type RecordController struct {
	records service.RecordReader
}

// NewRecordController creates a new RecordController backed by the given record service.
func NewRecordController(records service.RecordReader) *RecordController {
	return &RecordController{records: records}
}

// GetRecords handles GET /records - fetches from the provider and returns the records.
func (rc *RecordController) GetRecords(c *gin.Context) {
	log := logger.WithComponent("record-controller")
	log.Debugf("GET /records handler called")

	records, err := rc.records.GetRecords(c.Request.Context())
	if err != nil {
		var sue *provider.SourceUnavailableError
		switch {
		case errors.As(err, &sue):
			log.Warnf("get records: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "source unavailable", "reason": sue.Reason})
		case errors.Is(err, context.DeadlineExceeded):
			log.Warnf("get records: timed out waiting for fetch")
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timeout"})
		case errors.Is(err, context.Canceled):
			log.Debugf("get records: client went away")
			c.Status(499)
		default:
			log.Errorf("get records: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get records"})
		}
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetCachedRecords handles GET /records/cached - returns the cache without fetching.
func (rc *RecordController) GetCachedRecords(c *gin.Context) {
	logger.WithComponent("record-controller").Debugf("GET /records/cached handler called")
	c.JSON(http.StatusOK, CachedRecordsResponse{
		Records:    rc.records.PeekCached(),
		Populated:  rc.records.Populated(),
		LastUpdate: rc.records.LastUpdate(),
	})
}
