package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vehicle-rental/internal/domain/auth"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/jwt"
	"vehicle-rental/internal/pkg/password"
	"vehicle-rental/internal/usecase/shared"
)

const (
	constraintUsername = "users_username_lower_key"
	constraintEmail    = "users_email_lower_key"
)

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Phone          string
	Address        string
	DrivingLicense string
	IDProof        string
}

type LoginInput struct {
	Identifier string
	Password   string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role user.Role) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role user.Role) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	tokens TokenIssuer
	hasher password.Hasher
	clock  clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, tokens TokenIssuer, hasher password.Hasher, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:    uow,
		tokens: tokens,
		hasher: hasher,
		clock:  clk,
	}
}

// Register creates a customer account together with its profile.
func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	username, err := user.NewUsername(in.Username)
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	name, err := user.NewFullName(in.FirstName, in.LastName)
	if err != nil {
		return uuid.Nil, invalid(err)
	}

	hash, err := a.hasher.Hash(pw.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "hash password")
	}

	now := a.clock.Now()
	u := user.NewUser(username, email, name, hash, user.RoleCustomer, now)
	profile, err := user.NewProfile(u.ID(), user.ProfileParams{
		Phone:          in.Phone,
		Address:        in.Address,
		DrivingLicense: in.DrivingLicense,
		IDProof:        in.IDProof,
	})
	if err != nil {
		return uuid.Nil, invalid(err)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().Create(ctx, tx.DB(), u); err != nil {
			return err
		}
		return tx.Users().SaveProfile(ctx, tx.DB(), profile, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			switch infra.ConstraintName(err) {
			case constraintEmail:
				return uuid.Nil, ErrEmailTaken
			default:
				return uuid.Nil, ErrUsernameTaken
			}
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseFailed)
	}

	slog.Info("user registered", "user_id", u.ID())
	return u.ID(), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(in.Identifier, in.Password)
	if err != nil {
		if errs.Is(err, auth.ErrEmptyIdentifier) {
			return nil, invalid(err)
		}
		return nil, ErrInvalidCredentials
	}

	creds, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	pair, err := a.issue(creds.UserID, creds.Role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), creds.UserID)
	})
	if err != nil {
		// login succeeded; only the last_login bookkeeping failed
		slog.Warn("failed to update last login", "user_id", creds.UserID, "error", err.Error())
	}

	return &LoginResult{
		UserID:    creds.UserID,
		Role:      creds.Role,
		TokenPair: pair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	// The role is re-read so demotions take effect on the next refresh.
	creds, err := a.uow.CommandReads().CredentialsByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}
	if !creds.IsActive {
		return nil, ErrUserInactive
	}

	return a.issue(creds.UserID, creds.Role)
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*shared.Credentials, error) {
	creds, err := a.uow.CommandReads().CredentialsByLogin(ctx, credentials.Identifier())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a password mismatch to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}

	if err := a.hasher.Compare(creds.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !creds.IsActive {
		return nil, ErrUserInactive
	}
	return creds, nil
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh, err := a.tokens.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
