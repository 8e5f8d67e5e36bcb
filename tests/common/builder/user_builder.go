//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-rental/internal/domain/user"
	reqdto "vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultPassword is the password request builders send. It matches the
// fixture users dbtest inserts.
const DefaultPassword = "password123"

// fixedJoined keeps builder output stable across runs.
var fixedJoined = time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)

// UserBuilder produces the same user in each layer's shape. The ID is
// shared, so a row and a view built from one builder describe one user.
type UserBuilder struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    *time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Username:     "rider",
		Email:        "rider@example.com",
		FirstName:    "Asha",
		LastName:     "Rao",
		PasswordHash: "hashed_password",
		Role:         string(user.RoleCustomer),
		IsActive:     true,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

// WithUsername also derives the email so the two stay unique together.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	b.Email = username + "@example.com"
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.Role = role
	return b
}

func (b *UserBuilder) AsInactive() *UserBuilder {
	b.IsActive = false
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	username, err := user.NewUsername(b.Username)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	name, err := user.NewFullName(b.FirstName, b.LastName)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(b.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(username, email, name, b.PasswordHash, role, fixedJoined), nil
}

func (b *UserBuilder) BuildInfra() dbq.Users {
	ts := pgtype.Timestamptz{Time: fixedJoined, Valid: true}
	row := dbq.Users{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		PasswordHash: b.PasswordHash,
		Role:         b.Role,
		IsActive:     b.IsActive,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if b.LastLogin != nil {
		row.LastLogin = pgtype.Timestamptz{Time: *b.LastLogin, Valid: true}
	}
	return row
}

func (b *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        b.ID,
		Username:  b.Username,
		Email:     b.Email,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Role:      b.Role,
		IsActive:  b.IsActive,
		CreatedAt: fixedJoined,
	}
}

// BuildLoginDTO logs in with the username; pass the email to test the
// alternative identifier.
func (b *UserBuilder) BuildLoginDTO(identifier string) reqdto.LoginRequest {
	if identifier == "" {
		identifier = b.Username
	}
	return reqdto.LoginRequest{Username: identifier, Password: DefaultPassword}
}

func (b *UserBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Username:       b.Username,
		Email:          b.Email,
		Password:       DefaultPassword,
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Phone:          "9876543210",
		DrivingLicense: "KA0120230001234",
	}
}
