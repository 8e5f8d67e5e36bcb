//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserWriteQueries struct {
	mock.Mock
}

func (m *mockUserWriteQueries) CreateUser(ctx context.Context, db dbq.DBTX, arg dbq.CreateUserParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockUserWriteQueries) UpdateUserLastLogin(ctx context.Context, db dbq.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserWriteQueries) UpsertUserProfile(ctx context.Context, db dbq.DBTX, arg dbq.UpsertUserProfileParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *mockUserWriteQueries) SetUserProfilePicture(ctx context.Context, db dbq.DBTX, arg dbq.SetUserProfilePictureParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		affected int64
		dbErr    error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "unknown user", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", dbErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(mockUserWriteQueries)
			q.On("UpdateUserLastLogin", mock.Anything, mock.Anything, userID).Return(tt.affected, tt.dbErr)

			err := NewUserRepository(q, nil).UpdateLastLogin(context.Background(), nil, userID)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	u, err := builder.NewUserBuilder().WithUsername("asha").WithRole(string(user.RoleCustomer)).BuildDomain()
	require.NoError(t, err)

	t.Run("duplicate username keeps the constraint name", func(t *testing.T) {
		q := new(mockUserWriteQueries)
		q.On("CreateUser", mock.Anything, mock.Anything, mock.MatchedBy(func(p dbq.CreateUserParams) bool {
			return p.Username == "asha" && p.Role == "customer"
		})).Return(uuid.Nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_lower_key"})

		_, err := NewUserRepository(q, nil).Create(context.Background(), nil, u)

		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
		assert.Equal(t, "users_username_lower_key", infra.ConstraintName(err))
	})
}

func TestUserRepositorySaveProfilePicture(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	url := "http://localhost:9000/vehicle-images/profiles/" + userID.String() + "/a.webp"

	tests := []struct {
		name     string
		affected int64
		dbErr    error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "no profile row", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", dbErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(mockUserWriteQueries)
			q.On("SetUserProfilePicture", mock.Anything, mock.Anything, mock.MatchedBy(func(p dbq.SetUserProfilePictureParams) bool {
				return p.UserID == userID && p.PictureURL.Valid && p.PictureURL.String == url && p.UpdatedAt.Time.Equal(now)
			})).Return(tt.affected, tt.dbErr)

			err := NewUserRepository(q, nil).SaveProfilePicture(context.Background(), nil, userID, url, now)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			q.AssertExpectations(t)
		})
	}
}
