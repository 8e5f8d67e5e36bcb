package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	GetUserByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Users, error)
	GetUserProfile(ctx context.Context, db dbq.DBTX, userID uuid.UUID) (dbq.UserProfiles, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      dbq.DBTX
}

func NewUserReadStore(queries UserReadQueries, db dbq.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toAuthorizedUserView(row), nil
}

// FindProfile returns nil without error when the user has not filled in a profile yet.
func (r *UserReadStore) FindProfile(ctx context.Context, userID uuid.UUID) (*queries.ProfileView, error) {
	row, err := r.queries.GetUserProfile(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find user profile", err)
	}
	return &queries.ProfileView{
		UserID:         row.UserID,
		Phone:          row.Phone,
		Address:        row.Address,
		DrivingLicense: row.DrivingLicense,
		IDProof:        row.IDProof,
		PictureURL:     pgconv.StringPtrFromPgtype(row.PictureURL),
	}, nil
}

func toAuthorizedUserView(row dbq.Users) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Role:      row.Role,
		IsActive:  row.IsActive,
		LastLogin: pgconv.TimePtrFromPgtype(row.LastLogin),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
