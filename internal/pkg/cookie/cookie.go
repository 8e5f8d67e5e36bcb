// Package cookie carries the session tokens between the browser and the
// auth endpoints.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"

	// Browsers only send the refresh token to the auth endpoints.
	refreshCookiePath = "/api/auth"
)

func SetTokenCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(c.Writer, build(cfg, AccessTokenCookieName, accessToken, "/", accessTTL))
	http.SetCookie(c.Writer, build(cfg, RefreshTokenCookieName, refreshToken, refreshCookiePath, refreshTTL))
}

// ClearTokenCookies expires both cookies on logout.
func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, build(cfg, AccessTokenCookieName, "", "/", -1))
	http.SetCookie(c.Writer, build(cfg, RefreshTokenCookieName, "", refreshCookiePath, -1))
}

func GetAccessToken(c *gin.Context) string {
	return value(c, AccessTokenCookieName)
}

func GetRefreshToken(c *gin.Context) string {
	return value(c, RefreshTokenCookieName)
}

func value(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}

func build(cfg config.CookieConfig, name, val, path string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     path,
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	}
	if ttl < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		return ck
	}
	ck.MaxAge = int(ttl.Seconds())
	return ck
}

// sameSite defaults to Lax for anything unrecognised.
func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
