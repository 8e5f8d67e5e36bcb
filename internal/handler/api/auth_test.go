//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/cookie"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/common/testutil"
	commandsmock "vehicle-rental/tests/mock/commands"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	ctrl     *gomock.Controller
	commands *commandsmock.MockAuthCommands
	users    *queriesmock.MockUserQueries
	rider    *builder.UserBuilder
	me       uuid.UUID
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockAuthCommands(s.ctrl)
	s.users = queriesmock.NewMockUserQueries(s.ctrl)
	s.rider = builder.NewUserBuilder()
	s.me = s.rider.ID

	ttl := api.TokenTTL{Access: 15 * time.Minute, Refresh: 7 * 24 * time.Hour}
	h := api.NewAuthHandler(s.commands, s.users, config.NewTestConfig().Cookie, ttl)

	s.router = gin.New()
	s.router.POST("/auth/register", h.Register)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/refresh", h.Refresh)
	s.router.POST("/auth/logout", h.Logout)
	s.router.GET("/auth/me", fakeAuth(s.me, user.RoleCustomer), h.Me)
}

func (s *AuthHandlerTestSuite) TestRegister() {
	body := s.rider.BuildRegisterDTO()

	s.Run("returns the new account id", func() {
		id := uuid.New()
		s.commands.EXPECT().Register(gomock.Any(), body.ToInput()).Return(id, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", body, "")

		var got resdto.RegisterResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &got)
		s.Equal(id, got.ID)
	})

	rejected := map[string]testutil.Mutation{
		"seven character password": testutil.With("password", strings.Repeat("a", 7)),
		"two letter username":      testutil.With("username", "ab"),
		"malformed email":          testutil.With("email", "not-an-email"),
		"no first name":            testutil.With("first_name", nil),
		"sixteen digit phone":      testutil.With("phone", strings.Repeat("9", 16)),
	}
	for name, mut := range rejected {
		s.Run(name, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", testutil.JSONMap(s.T(), body, mut), "")
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		})
	}

	s.Run("username taken", func() {
		s.commands.EXPECT().Register(gomock.Any(), gomock.Any()).Return(uuid.Nil, commands.ErrUsernameTaken)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/register", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "username already exists")
	})
}

func (s *AuthHandlerTestSuite) TestLogin() {
	issued := &commands.LoginResult{
		UserID:    s.me,
		Role:      user.RoleCustomer,
		TokenPair: &commands.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"},
	}

	for _, identifier := range []string{"", s.rider.Email} {
		body := s.rider.BuildLoginDTO(identifier)
		s.Run("login as "+body.Username, func() {
			s.commands.EXPECT().Login(gomock.Any(), commands.LoginInput{Identifier: body.Username, Password: body.Password}).Return(issued, nil)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")

			var got resdto.LoginResponse
			httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
			s.Equal("access-1", got.AccessToken)
			s.Equal(s.me.String(), got.UserID)
			s.Equal("customer", got.Role)

			access := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
			s.Require().NotNil(access)
			s.Equal("access-1", access.Value)
			s.True(access.HttpOnly)
			s.Equal(int((15 * time.Minute).Seconds()), access.MaxAge)
		})
	}

	body := s.rider.BuildLoginDTO("")
	for _, field := range []string{"username", "password"} {
		s.Run("missing "+field, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", testutil.JSONMap(s.T(), body, testutil.With(field, nil)), "")
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		})
	}

	failures := []struct {
		err    error
		status int
		msg    string
	}{
		{err: commands.ErrInvalidCredentials, status: http.StatusUnauthorized, msg: "Invalid username or password"},
		{err: commands.ErrUserInactive, status: http.StatusForbidden, msg: "user account is inactive"},
		{err: errors.New("pool closed"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}
	for _, f := range failures {
		s.Run(f.msg, func() {
			s.commands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, f.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/login", body, "")
			httptest.AssertErrorResponse(s.T(), w, f.status, f.msg)
			s.Nil(httptest.ExtractCookie(w, cookie.AccessTokenCookieName))
		})
	}
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	rotated := &commands.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}

	s.Run("cookie wins over body", func() {
		s.commands.EXPECT().RefreshToken(gomock.Any(), "from-cookie").Return(rotated, nil)

		cookies := []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "from-cookie"}}
		w := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, "/auth/refresh",
			map[string]string{"refresh_token": "from-body"}, cookies, "")

		var got map[string]any
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal("access-2", got["access_token"])
		refresh := httptest.ExtractCookie(w, cookie.RefreshTokenCookieName)
		s.Require().NotNil(refresh)
		s.Equal("refresh-2", refresh.Value)
	})

	s.Run("body when there is no cookie", func() {
		s.commands.EXPECT().RefreshToken(gomock.Any(), "from-body").Return(rotated, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": "from-body"}, "")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("no token at all", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/refresh", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("token rejected", func() {
		s.commands.EXPECT().RefreshToken(gomock.Any(), "stale").Return(nil, commands.ErrTokenValidation)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": "stale"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthHandlerTestSuite) TestLogoutClearsCookies() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, bearer)

	s.Equal(http.StatusNoContent, w.Code)
	for _, name := range []string{cookie.AccessTokenCookieName, cookie.RefreshTokenCookieName} {
		c := httptest.ExtractCookie(w, name)
		s.Require().NotNil(c, name)
		s.Empty(c.Value)
		s.LessOrEqual(c.MaxAge, 0)
	}
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("reads the signed-in user", func() {
		s.users.EXPECT().GetCurrentUser(gomock.Any(), s.me).Return(s.rider.BuildReadModel(), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, bearer)

		var got resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(s.rider.Email, got.Email)
		s.Equal(s.rider.Username, got.Username)
	})

	s.Run("anonymous", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "User not authenticated")
	})

	failures := []struct {
		err    error
		status int
		msg    string
	}{
		{err: queries.ErrUserNotFound, status: http.StatusNotFound, msg: "user not found"},
		{err: queries.ErrUserInactive, status: http.StatusForbidden, msg: "user inactive"},
		{err: errors.New("pool closed"), status: http.StatusInternalServerError, msg: "Internal server error"},
	}
	for _, f := range failures {
		s.Run(f.msg, func() {
			s.users.EXPECT().GetCurrentUser(gomock.Any(), s.me).Return(nil, f.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, bearer)
			httptest.AssertErrorResponse(s.T(), w, f.status, f.msg)
		})
	}
}
