package repository

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"

	"github.com/google/uuid"
)

type RatingStatsQueries interface {
	RecalcVehicleRatingStats(ctx context.Context, db dbq.DBTX, vehicleID uuid.UUID) error
}

type RatingStatsRepository struct {
	q  RatingStatsQueries
	db dbq.DBTX
}

func NewRatingStatsRepository(q RatingStatsQueries, db dbq.DBTX) *RatingStatsRepository {
	return &RatingStatsRepository{q: q, db: db}
}

// Recalc rebuilds the aggregate row for a vehicle from its reviews.
func (r *RatingStatsRepository) Recalc(ctx context.Context, tx dbq.DBTX, vehicleID uuid.UUID) error {
	if err := r.q.RecalcVehicleRatingStats(ctx, tx, vehicleID); err != nil {
		return infra.WrapRepoErr("failed to recalculate rating stats", err)
	}
	return nil
}
