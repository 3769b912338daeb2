package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefreshStatus struct {
	failures int
	err      error
}

func (s stubRefreshStatus) ConsecutiveFailures() int { return s.failures }

func (s stubRefreshStatus) LastError() error { return s.err }

func serveHealth(t *testing.T, refresh RefreshStatus) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/health", NewHealthController(refresh).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestHealthController_NoRefresh(t *testing.T) {
	w := serveHealth(t, nil)
	assert.JSONEq(t, `{"message":"UP"}`, w.Body.String())
}

func TestHealthController_RefreshHealthy(t *testing.T) {
	w := serveHealth(t, stubRefreshStatus{})
	assert.JSONEq(t, `{"message":"UP","refresh":{"consecutiveFailures":0}}`, w.Body.String())
}

func TestHealthController_RefreshFailing(t *testing.T) {
	w := serveHealth(t, stubRefreshStatus{
		failures: 3,
		err:      errors.New("remote: source unavailable: unexpected status 502"),
	})
	assert.JSONEq(t, `{"message":"UP","refresh":{"consecutiveFailures":3,"lastError":"remote: source unavailable: unexpected status 502"}}`, w.Body.String())
}
