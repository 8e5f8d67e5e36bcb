package components

import (
	"time"

	"vehicle-rental/internal/handler"
	"vehicle-rental/internal/handler/api"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) *time.Location { return cfg.App.Location() },
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(s *jwt.Service) api.TokenTTL {
			return api.TokenTTL{Access: s.AccessTokenDuration(), Refresh: s.RefreshTokenDuration()}
		},
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewBookingHandler,
		api.NewReviewHandler,
		api.NewProfileHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
