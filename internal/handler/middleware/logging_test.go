//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	logger := newLogger(config.LogConfig{Level: "info", TimeZone: "UTC", TimeFormat: "2006-01-02"}, &buf)

	r := gin.New()
	r.Use(logger.LoggingMiddleware())
	r.GET("/api/bookings/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/abc", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(RequestIDHeader))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/api/bookings/:id", line["route"])
	assert.Equal(t, "abc", line["param_id"])
	assert.Equal(t, "trace-123", line["request_id"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "vehicle-rental", line["service"])
}

func TestIncomingRequestID(t *testing.T) {
	assert.Equal(t, "abc-1", incomingRequestID("abc-1"))

	for _, bad := range []string{"", "has space", strings.Repeat("x", maxRequestID+1)} {
		got := incomingRequestID(bad)
		assert.NotEqual(t, bad, got)
		assert.Len(t, got, 36)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}
