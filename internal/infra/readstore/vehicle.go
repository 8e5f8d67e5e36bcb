package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VehicleReadQueries interface {
	GetVehicleByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.VehicleWithCategoryRow, error)
	ListAvailableVehicles(ctx context.Context, db dbq.DBTX, arg dbq.ListAvailableVehiclesParams) ([]dbq.VehicleWithCategoryRow, error)
	CountAvailableVehicles(ctx context.Context, db dbq.DBTX, arg dbq.VehicleFilterParams) (int64, error)
	ListFeaturedVehicles(ctx context.Context, db dbq.DBTX, limit int32) ([]dbq.VehicleWithCategoryRow, error)
	ListSimilarVehicles(ctx context.Context, db dbq.DBTX, arg dbq.ListSimilarVehiclesParams) ([]dbq.VehicleWithCategoryRow, error)
	CountAvailableVehiclesByType(ctx context.Context, db dbq.DBTX) ([]dbq.CountAvailableVehiclesByTypeRow, error)
}

type VehicleReadStore struct {
	queries VehicleReadQueries
	db      dbq.DBTX
}

func NewVehicleReadStore(queries VehicleReadQueries, db dbq.DBTX) *VehicleReadStore {
	return &VehicleReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	row, err := r.queries.GetVehicleByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get vehicle by id", err)
	}
	view := &queries.VehicleView{}
	if err := copyRow(view, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to map vehicle row", err)
	}
	return view, nil
}

func (r *VehicleReadStore) ListAvailable(ctx context.Context, f queries.VehicleFilter, limit, offset int32) ([]*queries.VehicleListItem, error) {
	rows, err := r.queries.ListAvailableVehicles(ctx, r.db, dbq.ListAvailableVehiclesParams{
		VehicleFilterParams: toFilterParams(f),
		Limit:               limit,
		Offset:              offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available vehicles", err)
	}
	return mapVehicleRows(rows)
}

func (r *VehicleReadStore) CountAvailable(ctx context.Context, f queries.VehicleFilter) (int64, error) {
	n, err := r.queries.CountAvailableVehicles(ctx, r.db, toFilterParams(f))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count available vehicles", err)
	}
	return n, nil
}

func (r *VehicleReadStore) ListFeatured(ctx context.Context, limit int32) ([]*queries.VehicleListItem, error) {
	rows, err := r.queries.ListFeaturedVehicles(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list featured vehicles", err)
	}
	return mapVehicleRows(rows)
}

func (r *VehicleReadStore) ListSimilar(ctx context.Context, vehicleType string, excludeID uuid.UUID, limit int32) ([]*queries.VehicleListItem, error) {
	rows, err := r.queries.ListSimilarVehicles(ctx, r.db, dbq.ListSimilarVehiclesParams{
		VehicleType: vehicleType,
		ExcludeID:   excludeID,
		Limit:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list similar vehicles", err)
	}
	return mapVehicleRows(rows)
}

func (r *VehicleReadStore) CountByType(ctx context.Context) ([]queries.TypeCount, error) {
	rows, err := r.queries.CountAvailableVehiclesByType(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count vehicles by type", err)
	}
	out := make([]queries.TypeCount, len(rows))
	for i, row := range rows {
		out[i] = queries.TypeCount{VehicleType: row.VehicleType, Count: row.Count}
	}
	return out, nil
}

func mapVehicleRows(rows []dbq.VehicleWithCategoryRow) ([]*queries.VehicleListItem, error) {
	result := make([]*queries.VehicleListItem, len(rows))
	for i := range rows {
		item := &queries.VehicleListItem{}
		if err := copyRow(item, &rows[i]); err != nil {
			return nil, infra.WrapRepoErr("failed to map vehicle row", err)
		}
		result[i] = item
	}
	return result, nil
}

func toFilterParams(f queries.VehicleFilter) dbq.VehicleFilterParams {
	p := dbq.VehicleFilterParams{
		MinPriceCents: pgconv.Int8PtrToPgtype(f.MinPriceCents),
		MaxPriceCents: pgconv.Int8PtrToPgtype(f.MaxPriceCents),
		MinSeats:      pgconv.Int4PtrToPgtype(f.MinSeats),
		CategoryID:    pgconv.UUIDPtrToPgtype(f.CategoryID),
	}
	if f.Type != nil {
		p.VehicleType = pgtype.Text{String: *f.Type, Valid: true}
	}
	if f.Brand != nil {
		p.BrandPattern = pgtype.Text{String: escapeLike(*f.Brand), Valid: true}
	}
	return p
}
