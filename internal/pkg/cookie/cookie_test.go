//go:build unit

package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vehicle-rental/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesFrom(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestSetTokenCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetTokenCookies(c, config.CookieConfig{Secure: true, SameSite: "strict"}, "acc", "ref", 15*time.Minute, 24*time.Hour)

	got := cookiesFrom(w)
	require.Contains(t, got, AccessTokenCookieName)
	require.Contains(t, got, RefreshTokenCookieName)
	assert.Equal(t, "acc", got[AccessTokenCookieName].Value)
	assert.Equal(t, 900, got[AccessTokenCookieName].MaxAge)
	assert.Equal(t, "/", got[AccessTokenCookieName].Path)
	assert.Equal(t, refreshCookiePath, got[RefreshTokenCookieName].Path)
	assert.True(t, got[RefreshTokenCookieName].HttpOnly)
	assert.True(t, got[RefreshTokenCookieName].Secure)
	assert.Equal(t, http.SameSiteStrictMode, got[RefreshTokenCookieName].SameSite)
}

func TestClearTokenCookies(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ClearTokenCookies(c, config.CookieConfig{})

	for name, ck := range cookiesFrom(w) {
		assert.Empty(t, ck.Value, name)
		assert.Negative(t, ck.MaxAge, name)
	}
}

func TestGetTokens(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Request.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: "acc"})

	assert.Equal(t, "acc", GetAccessToken(c))
	assert.Empty(t, GetRefreshToken(c))
}
