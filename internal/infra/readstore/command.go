package readstore

import (
	"context"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReadQueries are the lookups the write side runs before mutating.
type CommandReadQueries interface {
	GetUserByLogin(ctx context.Context, db dbq.DBTX, identifier string) (dbq.Users, error)
	GetUserByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Users, error)
	GetCategoryByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Categories, error)
	GetCategoryByName(ctx context.Context, db dbq.DBTX, name string) (dbq.Categories, error)
	GetVehicle(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Vehicles, error)
	GetVehicleForUpdate(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Vehicles, error)
	VehicleNameExists(ctx context.Context, db dbq.DBTX, name string) (bool, error)
	GetBookingForUpdate(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Bookings, error)
	CountOverlappingBookings(ctx context.Context, db dbq.DBTX, arg dbq.CountOverlappingBookingsParams) (int64, error)
	GetReviewForUpdate(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Reviews, error)
}

// CommandReadStore maps rows to domain entities and write-side snapshots.
type CommandReadStore struct {
	queries CommandReadQueries
}

func NewCommandReadStore(queries CommandReadQueries) *CommandReadStore {
	return &CommandReadStore{queries: queries}
}

func (r *CommandReadStore) CredentialsByLogin(ctx context.Context, db dbq.DBTX, identifier string) (*shared.Credentials, error) {
	row, err := r.queries.GetUserByLogin(ctx, db, identifier)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to find user by login")
	}
	return toCredentials(row), nil
}

func (r *CommandReadStore) CredentialsByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (*shared.Credentials, error) {
	row, err := r.queries.GetUserByID(ctx, db, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to find user by ID")
	}
	return toCredentials(row), nil
}

func (r *CommandReadStore) CategoryByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (*shared.CategorySnapshot, error) {
	row, err := r.queries.GetCategoryByID(ctx, db, id)
	if err != nil {
		return nil, notFoundOr(err, "category not found", "failed to get category")
	}
	return &shared.CategorySnapshot{ID: row.ID, Name: row.Name}, nil
}

func (r *CommandReadStore) CategoryByName(ctx context.Context, db dbq.DBTX, name string) (*shared.CategorySnapshot, error) {
	row, err := r.queries.GetCategoryByName(ctx, db, name)
	if err != nil {
		return nil, notFoundOr(err, "category not found", "failed to get category by name")
	}
	return &shared.CategorySnapshot{ID: row.ID, Name: row.Name}, nil
}

func (r *CommandReadStore) Vehicle(ctx context.Context, db dbq.DBTX, id uuid.UUID, lock bool) (*vehicle.Vehicle, error) {
	get := r.queries.GetVehicle
	if lock {
		get = r.queries.GetVehicleForUpdate
	}
	row, err := get(ctx, db, id)
	if err != nil {
		return nil, notFoundOr(err, "vehicle not found", "failed to get vehicle")
	}
	return converter.VehicleFromRow(row), nil
}

func (r *CommandReadStore) VehicleNameExists(ctx context.Context, db dbq.DBTX, name string) (bool, error) {
	ok, err := r.queries.VehicleNameExists(ctx, db, name)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check vehicle name", err)
	}
	return ok, nil
}

func (r *CommandReadStore) BookingForUpdate(ctx context.Context, db dbq.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, db, id)
	if err != nil {
		return nil, notFoundOr(err, "booking not found", "failed to get booking")
	}
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map booking row", err)
	}
	return b, nil
}

func (r *CommandReadStore) CountOverlappingBookings(ctx context.Context, db dbq.DBTX, vehicleID uuid.UUID, slot booking.TimeSlot) (int64, error) {
	n, err := r.queries.CountOverlappingBookings(ctx, db, dbq.CountOverlappingBookingsParams{
		VehicleID: vehicleID,
		StartDate: pgconv.TimeToPgtype(slot.Start()),
		EndDate:   pgconv.TimeToPgtype(slot.End()),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return n, nil
}

func (r *CommandReadStore) ReviewForUpdate(ctx context.Context, db dbq.DBTX, id uuid.UUID) (*review.Review, error) {
	row, err := r.queries.GetReviewForUpdate(ctx, db, id)
	if err != nil {
		return nil, notFoundOr(err, "review not found", "failed to get review")
	}
	rev, err := converter.ReviewFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to map review row", err)
	}
	return rev, nil
}

func notFoundOr(err error, notFoundMsg, failMsg string) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(failMsg, err)
}

func toCredentials(row dbq.Users) *shared.Credentials {
	return &shared.Credentials{
		UserID:       row.ID,
		Username:     row.Username,
		Role:         user.Role(row.Role),
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
	}
}
