package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/pkg/cookie"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errTokenRequired = errs.New("access token required")
	errRoleTooLow    = errs.New("insufficient role")
	errNoActor       = errs.New("role check ran without an authenticated actor")
)

const actorKey = "actor"

type AuthMiddleware struct {
	tokens usecase.TokenValidator
}

func NewAuthMiddleware(tokens usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// authenticate returns ok=false when no token was sent at all.
func (m *AuthMiddleware) authenticate(c *gin.Context) (shared.Actor, bool, error) {
	token := bearerOrCookie(c)
	if token == "" {
		return shared.Actor{}, false, nil
	}
	actor, err := m.tokens.ValidateToken(token)
	return actor, true, err
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, sent, err := m.authenticate(c)
		switch {
		case !sent:
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		case err != nil:
			slog.WarnContext(c.Request.Context(), "rejected access token", "route", c.FullPath(), "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Wrap(err, "validate access token"), "Invalid or expired token", nil)
			return
		}
		SetActor(c, actor)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present. Catalog
// pages use it to show the caller's own review; a bad token is ignored.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, sent, err := m.authenticate(c); sent && err == nil {
			SetActor(c, actor)
		}
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoActor, "Internal server error", nil)
			return
		}
		if !actor.Role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden,
				errs.Wrapf(errRoleTooLow, "%s needs %s", actor.Role, minRole), "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// bearerOrCookie prefers the access cookie browsers send, then an
// Authorization: Bearer header from API clients.
func bearerOrCookie(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func SetActor(c *gin.Context, actor shared.Actor) {
	c.Set(actorKey, actor)
}

// GetActor returns the authenticated caller, if any.
func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	actor, ok := GetActor(c)
	return actor.ID, ok
}
