package usecase

import (
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/usecase/shared"
)

// TokenValidator turns an access token into the actor a request runs as.
type TokenValidator interface {
	ValidateToken(token string) (shared.Actor, error)
}

type accessTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return &accessTokenValidator{tokens: tokens}
}

// ValidateToken refuses refresh tokens so a leaked refresh cookie cannot be
// replayed against booking endpoints.
func (v *accessTokenValidator) ValidateToken(token string) (shared.Actor, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return shared.Actor{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return shared.Actor{}, errs.Wrapf(jwt.ErrInvalidToken, "got %s token", claims.TokenType)
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, errs.Wrapf(err, "token role %q", claims.Role)
	}
	return shared.Actor{ID: claims.UserID, Role: role}, nil
}
