package auth

import (
	"errors"
	"strings"

	"vehicle-rental/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyIdentifier    = errors.New("username or email is required")
)

// Credentials identify a user by username or email.
type Credentials struct {
	identifier string
	password   user.Password
}

func NewCredentials(identifier, passwordStr string) (Credentials, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Credentials{}, ErrEmptyIdentifier
	}

	password, err := user.NewPassword(passwordStr)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		identifier: identifier,
		password:   password,
	}, nil
}

func (c Credentials) Identifier() string {
	return c.identifier
}

func (c Credentials) Password() user.Password {
	return c.password
}
