package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	"vehicle-rental/internal/handler/middleware"
	"vehicle-rental/internal/pkg/config"
)

// route is one endpoint with the middleware that runs only for it.
type route struct {
	method string
	path   string
	mw     []gin.HandlerFunc
	h      gin.HandlerFunc
}

func mount(g *gin.RouterGroup, rs ...route) {
	for _, r := range rs {
		chain := append(append([]gin.HandlerFunc(nil), r.mw...), r.h)
		g.Handle(r.method, r.path, chain...)
	}
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	fx.In

	Auth    *api.AuthHandler
	Catalog *api.CatalogHandler
	Booking *api.BookingHandler
	Review  *api.ReviewHandler
	Profile *api.ProfileHandler
	Admin   *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, auth *middleware.AuthMiddleware) {
	// recovery outermost so panics in the other middleware are caught too
	engine.Use(
		middleware.CustomRecovery(),
		middleware.NewCORSMiddleware(cfg.CORS),
		logger.LoggingMiddleware(),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", healthCheck)
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	mountAPI(engine.Group("/api"), h, auth)
}

func mountAPI(g *gin.RouterGroup, h Handlers, auth *middleware.AuthMiddleware) {
	signedIn := []gin.HandlerFunc{auth.RequireAuth()}
	staff := []gin.HandlerFunc{auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleStaff)}

	mount(g.Group("/auth"),
		route{method: http.MethodPost, path: "/register", h: h.Auth.Register},
		route{method: http.MethodPost, path: "/login", h: h.Auth.Login},
		route{method: http.MethodPost, path: "/refresh", h: h.Auth.Refresh},
		route{method: http.MethodPost, path: "/logout", mw: signedIn, h: h.Auth.Logout},
		route{method: http.MethodGet, path: "/me", mw: signedIn, h: h.Auth.Me},
	)

	// catalog is public; vehicle detail shows extra fields to staff
	mount(g,
		route{method: http.MethodGet, path: "/home", h: h.Catalog.Home},
		route{method: http.MethodGet, path: "/categories", h: h.Catalog.ListCategories},
		route{method: http.MethodGet, path: "/categories/:id/vehicles", h: h.Catalog.CategoryVehicles},
		route{method: http.MethodGet, path: "/vehicles", h: h.Catalog.ListVehicles},
		route{method: http.MethodGet, path: "/vehicles/:id", mw: []gin.HandlerFunc{auth.OptionalAuth()}, h: h.Catalog.GetVehicle},
		route{method: http.MethodGet, path: "/vehicles/:id/quote", h: h.Catalog.Quote},
		route{method: http.MethodGet, path: "/vehicles/:id/reviews", h: h.Review.ListByVehicle},
	)

	mount(g,
		route{method: http.MethodGet, path: "/profile", mw: signedIn, h: h.Profile.Get},
		route{method: http.MethodPut, path: "/profile", mw: signedIn, h: h.Profile.Update},
		route{method: http.MethodPost, path: "/profile/picture", mw: signedIn, h: h.Profile.UploadPicture},
		route{method: http.MethodPost, path: "/vehicles/:id/reviews", mw: signedIn, h: h.Review.Create},
		route{method: http.MethodPut, path: "/reviews/:id", mw: signedIn, h: h.Review.Update},
		route{method: http.MethodDelete, path: "/reviews/:id", mw: signedIn, h: h.Review.Delete},
		route{method: http.MethodPost, path: "/vehicles/:id/bookings", mw: signedIn, h: h.Booking.Create},
		route{method: http.MethodGet, path: "/bookings", mw: signedIn, h: h.Booking.ListMine},
		route{method: http.MethodGet, path: "/bookings/:id", mw: signedIn, h: h.Booking.Get},
		route{method: http.MethodGet, path: "/bookings/:id/receipt", mw: signedIn, h: h.Booking.Receipt},
		route{method: http.MethodPost, path: "/bookings/:id/cancel", mw: signedIn, h: h.Booking.Cancel},
	)

	mount(g.Group("/admin", staff...),
		route{method: http.MethodPost, path: "/categories", h: h.Admin.CreateCategory},
		route{method: http.MethodPost, path: "/vehicles", h: h.Admin.CreateVehicle},
		route{method: http.MethodPut, path: "/vehicles/:id", h: h.Admin.UpdateVehicle},
		route{method: http.MethodPatch, path: "/vehicles/:id/availability", h: h.Admin.SetAvailability},
		route{method: http.MethodPost, path: "/vehicles/:id/image", h: h.Admin.UploadImage},
		route{method: http.MethodPost, path: "/bookings/:id/status", h: h.Booking.SetStatus},
		route{method: http.MethodPost, path: "/bookings/:id/payment", h: h.Booking.SetPayment},
	)
}

// @Summary Health check
// @Description Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
