package repository

import (
	"context"

	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/repository/converter"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type VehicleWriteQueries interface {
	CreateVehicle(ctx context.Context, db dbq.DBTX, arg dbq.CreateVehicleParams) (uuid.UUID, error)
	UpdateVehicle(ctx context.Context, db dbq.DBTX, arg dbq.UpdateVehicleParams) (int64, error)
	SetVehicleAvailability(ctx context.Context, db dbq.DBTX, arg dbq.SetVehicleAvailabilityParams) (int64, error)
	SetVehicleImage(ctx context.Context, db dbq.DBTX, arg dbq.SetVehicleImageParams) (int64, error)
}

type VehicleRepository struct {
	queries VehicleWriteQueries
	db      dbq.DBTX
}

func NewVehicleRepository(queries VehicleWriteQueries, db dbq.DBTX) *VehicleRepository {
	return &VehicleRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	id, err := r.queries.CreateVehicle(ctx, tx, converter.VehicleToCreateParams(v))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}
	return id, nil
}

func (r *VehicleRepository) Update(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error {
	n, err := r.queries.UpdateVehicle(ctx, tx, converter.VehicleToUpdateParams(v))
	return rowsAffected(n, err, "vehicle")
}

func (r *VehicleRepository) SaveAvailability(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error {
	n, err := r.queries.SetVehicleAvailability(ctx, tx, dbq.SetVehicleAvailabilityParams{
		ID:          v.ID(),
		IsAvailable: v.IsAvailable(),
		UpdatedAt:   pgconv.TimeToPgtype(v.UpdatedAt()),
	})
	return rowsAffected(n, err, "vehicle")
}

func (r *VehicleRepository) SaveImage(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error {
	n, err := r.queries.SetVehicleImage(ctx, tx, dbq.SetVehicleImageParams{
		ID:        v.ID(),
		ImageURL:  pgconv.StringPtrToPgtype(v.ImageURL()),
		UpdatedAt: pgconv.TimeToPgtype(v.UpdatedAt()),
	})
	return rowsAffected(n, err, "vehicle")
}

// rowsAffected maps an :execrows result to a repository error.
func rowsAffected(n int64, err error, entity string) error {
	if err != nil {
		return infra.WrapRepoErr("failed to update "+entity, err)
	}
	if n == 0 {
		return infra.WrapRepoErr(entity+" not found", nil, infra.KindNotFound)
	}
	return nil
}
