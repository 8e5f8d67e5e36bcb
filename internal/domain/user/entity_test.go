//go:build unit

package user_test

import (
	"strings"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	joined := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	username, err := user.NewUsername("ravi_k")
	require.NoError(t, err)
	email, err := user.NewEmail("Ravi@Example.com")
	require.NoError(t, err)
	name, err := user.NewFullName("Ravi", "Kumar")
	require.NoError(t, err)

	u := user.NewUser(username, email, name, "hash", user.RoleCustomer, joined)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
	assert.Equal(t, joined, u.CreatedAt())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())

	// two registrations never share an ID
	other := user.NewUser(username, email, name, "hash", user.RoleCustomer, joined)
	assert.NotEqual(t, u.ID(), other.ID())
	if diff := cmp.Diff(u, other, cmpopts.IgnoreUnexported(user.User{})); diff != "" {
		t.Errorf("exported state differs (-first +second):\n%s", diff)
	}
}

func TestUserValidationThroughBuilder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*builder.UserBuilder)
		errIs  error
	}{
		{name: "defaults", mutate: func(*builder.UserBuilder) {}},
		{name: "symbols in username", mutate: func(b *builder.UserBuilder) { b.Username = "a.b+c-d@e" }},
		{name: "username too short", mutate: func(b *builder.UserBuilder) { b.Username = "ab" }, errIs: user.ErrInvalidUsername},
		{name: "username with space", mutate: func(b *builder.UserBuilder) { b.Username = "ravi kumar" }, errIs: user.ErrInvalidUsername},
		{name: "username too long", mutate: func(b *builder.UserBuilder) { b.Username = strings.Repeat("u", 151) }, errIs: user.ErrInvalidUsername},
		{name: "empty email", mutate: func(b *builder.UserBuilder) { b.Email = "" }, errIs: user.ErrInvalidEmail},
		{name: "email without at sign", mutate: func(b *builder.UserBuilder) { b.Email = "rider.example.com" }, errIs: user.ErrInvalidEmail},
		{name: "staff", mutate: func(b *builder.UserBuilder) { b.Role = "staff" }},
		{name: "admin", mutate: func(b *builder.UserBuilder) { b.Role = "admin" }},
		{name: "unknown role", mutate: func(b *builder.UserBuilder) { b.Role = "operator" }, errIs: user.ErrInvalidRole},
		{name: "empty role", mutate: func(b *builder.UserBuilder) { b.Role = "" }, errIs: user.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := builder.NewUserBuilder().With(tt.mutate).BuildDomain()

			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, user.RoleAdmin.AtLeast(user.RoleStaff))
	assert.True(t, user.RoleStaff.AtLeast(user.RoleStaff))
	assert.False(t, user.RoleCustomer.AtLeast(user.RoleStaff))
	assert.False(t, user.Role("ghost").AtLeast(user.Role("ghost")))
}

func TestNewProfile(t *testing.T) {
	id := uuid.New()

	p, err := user.NewProfile(id, user.ProfileParams{Phone: " +91 98765-43210 ", DrivingLicense: "KA0120230001234"})
	require.NoError(t, err)
	assert.Equal(t, "+91 98765-43210", p.Phone())
	assert.Equal(t, id, p.UserID())

	_, err = user.NewProfile(id, user.ProfileParams{Phone: "call me"})
	require.ErrorIs(t, err, user.ErrInvalidPhone)

	_, err = user.NewProfile(id, user.ProfileParams{IDProof: strings.Repeat("x", user.MaxIDProofLength+1)})
	require.ErrorIs(t, err, user.ErrProfileField)

	_, err = user.NewProfile(id, user.ProfileParams{})
	require.NoError(t, err)
}
