//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/cookie"
	"vehicle-rental/tests/common/authtest"
	"vehicle-rental/tests/common/dbtest"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func registration(username string) request.RegisterRequest {
	return request.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "Asha",
		LastName:  "Rao",
		Phone:     "9876543210",
	}
}

func (s *AuthSuite) TestRegister() {
	s.Run("success: new account can log in as a customer", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, registration("asha"), "")
		var created response.RegisterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotEqual(t, uuid.Nil, created.ID)

		token := authtest.LoginUser(t, s.Router, "asha", "password123")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var me response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		s.Equal(created.ID, me.ID)
		s.Equal(string(user.RoleCustomer), me.Role)
		s.NotNil(me.LastLogin)
	})

	s.Run("error: username is taken regardless of case", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "ravi", string(user.RoleCustomer))

		req := registration("RAVI")
		req.Email = "someone.else@example.com"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, req, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("error: short password", func() {
		req := registration("meera")
		req.Password = "short"
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, req, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})
}

func (s *AuthSuite) TestLogin() {
	s.Run("success: email works as the login identifier", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "kiran", string(user.RoleStaff))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Username: "kiran@example.com", Password: "password123"}, "")
		var res response.LoginResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		s.Equal(string(user.RoleStaff), res.Role)
		s.NotNil(httptest.ExtractCookie(w, cookie.AccessTokenCookieName))
		s.NotNil(httptest.ExtractCookie(w, cookie.RefreshTokenCookieName))
	})

	s.Run("error: wrong password", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "kiran", string(user.RoleCustomer))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Username: "kiran", Password: "not-the-password"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid username or password")
	})

	s.Run("error: deactivated account", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "dormant", string(user.RoleCustomer))
		_, err := s.DB.Exec(t.Context(), "UPDATE users SET is_active = false WHERE id = $1", id)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Username: "dormant", Password: "password123"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "inactive")
	})
}

func (s *AuthSuite) TestSession() {
	s.Run("success: refresh cookie issues a new access token", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "nisha", string(user.RoleCustomer))

		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Username: "nisha", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, login.Code, login.Body.String())
		refresh := httptest.ExtractCookie(login, cookie.RefreshTokenCookieName)
		require.NotNil(t, refresh)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, []*http.Cookie{refresh}, "")
		var res response.LoginResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		s.NotEmpty(res.AccessToken)

		authtest.LogoutUser(t, s.Router, httptest.ExtractCookies(login))
	})

	s.Run("error: expired access token", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "nisha", string(user.RoleCustomer))
		token := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, id, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "")
	})

	s.Run("error: customers cannot reach the admin area", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "plain", string(user.RoleCustomer))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/categories",
			map[string]string{"name": "Luxury"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}
