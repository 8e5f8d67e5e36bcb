package middleware

import (
	"log/slog"
	"slices"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser clients read these to detect booking replays and correlate logs.
var alwaysExposed = []string{"X-Request-ID", "Idempotent-Replayed", "Content-Disposition"}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := slices.Clone(cfg.ExposeHeaders)
	for _, h := range alwaysExposed {
		if !slices.Contains(expose, h) {
			expose = append(expose, h)
		}
	}

	slog.Info("cors configured",
		"origins", cfg.AllowOrigins,
		"credentials", cfg.AllowCredentials,
		"expose", expose)

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
