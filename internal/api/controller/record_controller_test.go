package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bassista/go_records/internal/provider"
	"github.com/bassista/go_records/internal/record"
	"github.com/bassista/go_records/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockRecordReader implements service.RecordReader for testing
type mockRecordReader struct {
	records    []record.Record
	cached     []record.Record
	err        error
	populated  bool
	lastUpdate int64
	fetches    int
}

func (m *mockRecordReader) GetRecords(ctx context.Context) ([]record.Record, error) {
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockRecordReader) PeekCached() []record.Record { return m.cached }

func (m *mockRecordReader) LastUpdate() int64 { return m.lastUpdate }

func (m *mockRecordReader) Populated() bool { return m.populated }

func serve(t *testing.T, reader service.RecordReader, path string) *httptest.ResponseRecorder {
	t.Helper()
	rc := NewRecordController(reader)

	r := gin.New()
	r.GET("/records", rc.GetRecords)
	r.GET("/records/cached", rc.GetCachedRecords)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecordController_GetRecords(t *testing.T) {
	reader := &mockRecordReader{records: []record.Record{
		{ID: 1, OwnerID: 1, Title: "sunt aut facere", Body: "quia"},
		{ID: 2, OwnerID: 1, Title: "qui est esse", Body: "est"},
	}}

	w := serve(t, reader, "/records")

	require.Equal(t, http.StatusOK, w.Code)
	var got []record.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, reader.records, got)
	assert.Equal(t, 1, reader.fetches)
}

func TestRecordController_GetRecords_WireFormat(t *testing.T) {
	reader := &mockRecordReader{records: []record.Record{{ID: 3, OwnerID: 7, Title: "t", Body: "b"}}}

	w := serve(t, reader, "/records")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":3,"userId":7,"title":"t","body":"b"}]`, w.Body.String())
}

func TestRecordController_GetRecords_SourceUnavailable(t *testing.T) {
	reader := &mockRecordReader{err: &provider.SourceUnavailableError{Provider: "remote", Reason: "unexpected status 500"}}

	w := serve(t, reader, "/records")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "source unavailable", body["error"])
	assert.Equal(t, "unexpected status 500", body["reason"])
}

func TestRecordController_GetRecords_Timeout(t *testing.T) {
	reader := &mockRecordReader{err: context.DeadlineExceeded}

	w := serve(t, reader, "/records")

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRecordController_GetRecords_UnexpectedError(t *testing.T) {
	reader := &mockRecordReader{err: errors.New("boom")}

	w := serve(t, reader, "/records")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecordController_GetCachedRecords(t *testing.T) {
	reader := &mockRecordReader{
		cached:     []record.Record{{ID: 1, Title: "cached"}},
		populated:  true,
		lastUpdate: 1700000000000,
	}

	w := serve(t, reader, "/records/cached")

	require.Equal(t, http.StatusOK, w.Code)
	var got CachedRecordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, reader.cached, got.Records)
	assert.True(t, got.Populated)
	assert.Equal(t, int64(1700000000000), got.LastUpdate)
	assert.Equal(t, 0, reader.fetches, "cached endpoint must not fetch")
}

func TestRecordController_GetCachedRecords_Empty(t *testing.T) {
	reader := &mockRecordReader{cached: []record.Record{}}

	w := serve(t, reader, "/records/cached")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"records":[],"populated":false,"lastUpdate":0}`, w.Body.String())
}

func TestRecordController_WithRecordService(t *testing.T) {
	svc, err := service.New(provider.NewLocalFixtureProvider())
	require.NoError(t, err)

	w := serve(t, svc, "/records")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, svc, "/records/cached")
	require.Equal(t, http.StatusOK, w.Code)
	var got CachedRecordsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Records, 2)
	assert.True(t, got.Populated)
}
