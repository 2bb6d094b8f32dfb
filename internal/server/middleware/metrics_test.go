package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetHTTPMetrics(t *testing.T) {
	t.Helper()
	hist, err := registerHTTPMetrics(DefaultMetricsConfig)
	require.NoError(t, err)
	hist.Reset()
}

func get(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMetricsMiddleware(t *testing.T) {
	resetHTTPMetrics(t)

	e := echo.New()
	e.Use(Metrics())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST("/webhook", func(c echo.Context) error {
		return errors.New("handler failed")
	})

	for range 10 {
		get(e, http.MethodGet, "/health")
	}
	for range 3 {
		get(e, http.MethodPost, "/webhook")
	}
	for range 4 {
		get(e, http.MethodGet, "/nope/1")
		get(e, http.MethodGet, "/nope/2")
	}

	rec := get(e, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `request_duration_seconds_count{code="200",method="GET",path="/health"} 10`)
	assert.Contains(t, text, `request_duration_seconds_count{code="500",method="POST",path="/webhook"} 3`)
	assert.Contains(t, text, `request_duration_seconds_count{code="404",method="GET",path="/not-found"} 8`)
	assert.NotContains(t, text, `path="/metrics"`)
}
