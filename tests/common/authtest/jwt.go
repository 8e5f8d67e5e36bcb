//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the application under test accepts, or
// deliberately does not.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(clk clock.Clock) *jwt.Service {
	return jwt.NewService(jwt.Options{
		Secret:     h.cfg.Secret,
		Issuer:     h.cfg.Issuer,
		AccessTTL:  h.cfg.AccessTTL,
		RefreshTTL: h.cfg.RefreshTTL,
	}, clk)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service(clock.System).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token whose lifetime ended a minute ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-h.cfg.AccessTTL - time.Minute))
	token, err := h.service(past).GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return token
}
