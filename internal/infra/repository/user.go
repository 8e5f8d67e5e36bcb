package repository

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db dbq.DBTX, arg dbq.CreateUserParams) (uuid.UUID, error)
	UpdateUserLastLogin(ctx context.Context, db dbq.DBTX, id uuid.UUID) (int64, error)
	UpsertUserProfile(ctx context.Context, db dbq.DBTX, arg dbq.UpsertUserProfileParams) error
	SetUserProfilePicture(ctx context.Context, db dbq.DBTX, arg dbq.SetUserProfilePictureParams) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
	db      dbq.DBTX
}

func NewUserRepository(queries UserWriteQueries, db dbq.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) Create(ctx context.Context, tx dbq.DBTX, u *user.User) (uuid.UUID, error) {
	id, err := r.queries.CreateUser(ctx, tx, converter.UserToCreateParams(u))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx dbq.DBTX, userID uuid.UUID) error {
	n, err := r.queries.UpdateUserLastLogin(ctx, tx, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) SaveProfile(ctx context.Context, tx dbq.DBTX, p *user.Profile, now time.Time) error {
	params := dbq.UpsertUserProfileParams{
		UserID:         p.UserID(),
		Phone:          p.Phone(),
		Address:        p.Address(),
		DrivingLicense: p.DrivingLicense(),
		IDProof:        p.IDProof(),
		UpdatedAt:      pgconv.TimeToPgtype(now),
	}
	if err := r.queries.UpsertUserProfile(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to save user profile", err)
	}
	return nil
}

// SaveProfilePicture points an existing profile at an uploaded picture.
func (r *UserRepository) SaveProfilePicture(ctx context.Context, tx dbq.DBTX, userID uuid.UUID, url string, now time.Time) error {
	n, err := r.queries.SetUserProfilePicture(ctx, tx, dbq.SetUserProfilePictureParams{
		UserID:     userID,
		PictureURL: pgconv.StringToPgtype(url),
		UpdatedAt:  pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to save profile picture", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("profile not found", nil, infra.KindNotFound)
	}
	return nil
}
