package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logLine struct {
	level string
	kv    map[string]any
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *recordingLogger) record(level string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	l.lines = append(l.lines, logLine{level: level, kv: m})
}

func (l *recordingLogger) Debugw(_ string, kv ...any) { l.record("debug", kv) }
func (l *recordingLogger) Infow(_ string, kv ...any)  { l.record("info", kv) }
func (l *recordingLogger) Warnw(_ string, kv ...any)  { l.record("warn", kv) }
func (l *recordingLogger) Errorw(_ string, kv ...any) { l.record("error", kv) }

func TestLogRequest(t *testing.T) {
	rl := &recordingLogger{}
	e := echo.New()
	e.Use(RequestID())
	e.Use(LogRequest(LogRequestConfig{
		Logger: rl,
		Enabled: func(c echo.Context) bool {
			return c.Request().RequestURI != "/health"
		},
		KeyAndValues: func(c echo.Context) []any {
			return []any{"transport", "webhook"}
		},
	}))
	e.POST("/webhook", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(XRequestID, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Len(t, rl.lines, 2)

	first := rl.lines[0]
	assert.Equal(t, "info", first.level)
	assert.Equal(t, http.StatusOK, first.kv["status"])
	assert.Equal(t, "req-1", first.kv["request_id"])
	assert.Equal(t, "webhook", first.kv["transport"])
	assert.Equal(t, `{"update_id":1}`, string(first.kv["request_body"].(json.RawMessage)))

	second := rl.lines[1]
	assert.Equal(t, "error", second.level)
	assert.Equal(t, http.StatusBadGateway, second.kv["status"])
}
