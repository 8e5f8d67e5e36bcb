//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/cookie"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"

	// DefaultPassword matches the hash dbtest stores for fixture users.
	DefaultPassword = "password123"
)

// LoginUser returns the access token and checks that the body and the
// cookie carry the same one.
func LoginUser(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, loginPath,
		request.LoginRequest{Username: username, Password: password}, "")
	var res response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	require.NotEmpty(t, res.AccessToken, "login returned no access token")

	access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, access, "access token cookie missing")
	require.Equal(t, res.AccessToken, access.Value)

	return res.AccessToken
}

// CreateAndLogin inserts a fixture user with role and logs in as them.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, username, role)
	return LoginUser(t, router, username, DefaultPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, logoutPath, nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		require.LessOrEqual(t, c.MaxAge, 0, "cookie %s not cleared", c.Name)
	}
}
