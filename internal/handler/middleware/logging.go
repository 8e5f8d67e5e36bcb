package middleware

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey  = "request_id"
	maxRequestID  = 64
	idempotencyHd = "Idempotency-Key"
)

type Logger struct {
	logger *slog.Logger
	zone   *time.Location
}

// NewLogger builds the process logger and installs it as the slog default.
// Release mode logs JSON; other modes use the coloured tint handler.
func NewLogger(cfg config.LogConfig) *Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.LogConfig, w io.Writer) *Logger {
	level := parseLevel(cfg.Level)
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.AddSource,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if t, ok := topLevelTime(groups, a); ok {
					a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
				}
				return a
			},
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  cfg.AddSource,
			TimeFormat: cfg.TimeFormat,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if t, ok := topLevelTime(groups, a); ok {
					a.Value = slog.TimeValue(t.In(zone))
				}
				return a
			},
		})
	}

	logger := slog.New(handler).With("service", "vehicle-rental")
	slog.SetDefault(logger)
	return &Logger{logger: logger, zone: zone}
}

func topLevelTime(groups []string, a slog.Attr) (time.Time, bool) {
	if a.Key != slog.TimeKey || len(groups) > 0 {
		return time.Time{}, false
	}
	t, ok := a.Value.Any().(time.Time)
	return t, ok
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware writes one line per request once it has finished. The
// caller is only known after the auth middleware inside it has run.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := incomingRequestID(c.GetHeader(RequestIDHeader))
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("route", routeOf(c)),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if key := c.GetHeader(idempotencyHd); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}
		for _, p := range c.Params {
			attrs = append(attrs, slog.String("param_"+p.Key, p.Value))
		}
		if actor, ok := GetActor(c); ok {
			attrs = append(attrs,
				slog.String("user_id", actor.ID.String()),
				slog.String("role", actor.Role.String()))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("bytes", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		l.logger.LogAttrs(c.Request.Context(), levelFor(status), "request", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routeOf prefers the registered pattern so booking ids do not explode
// log cardinality. Unmatched routes fall back to the raw path.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}

// incomingRequestID keeps a caller supplied id when it is printable and
// short, otherwise mints a time ordered UUID.
func incomingRequestID(h string) string {
	if h != "" && len(h) <= maxRequestID && !strings.ContainsFunc(h, func(r rune) bool { return r < 0x21 || r > 0x7e }) {
		return h
	}
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
