package readstore

import (
	"context"
	"math"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewViewQueries interface {
	GetReviewViewByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.ReviewViewRow, error)
	ListReviewsByVehicleFirstPage(ctx context.Context, db dbq.DBTX, arg dbq.ListReviewsByVehicleFirstPageParams) ([]dbq.ReviewViewRow, error)
	ListReviewsByVehicleKeyset(ctx context.Context, db dbq.DBTX, arg dbq.ListReviewsByVehicleKeysetParams) ([]dbq.ReviewViewRow, error)
	ListReviewsByUser(ctx context.Context, db dbq.DBTX, arg dbq.ListReviewsByUserParams) ([]dbq.ReviewViewRow, error)
	GetReviewViewByUserAndVehicle(ctx context.Context, db dbq.DBTX, arg dbq.GetReviewViewByUserAndVehicleParams) (dbq.ReviewViewRow, error)
	GetVehicleRatingStats(ctx context.Context, db dbq.DBTX, vehicleID uuid.UUID) (dbq.VehicleRatingStats, error)
}

type ReviewReadStore struct {
	queries ReviewViewQueries
	db      dbq.DBTX
}

func NewReviewReadStore(queries ReviewViewQueries, db dbq.DBTX) *ReviewReadStore {
	return &ReviewReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	row, err := r.queries.GetReviewViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("load review view", err)
	}
	return toReviewView(row), nil
}

// FindByVehicle runs the keyset query when the page continues from a cursor.
func (r *ReviewReadStore) FindByVehicle(ctx context.Context, vehicleID uuid.UUID, page queries.ReviewPage) ([]*queries.ReviewView, error) {
	minRating := pgconv.Int4PtrToPgtype(page.MinRating)
	maxRating := pgconv.Int4PtrToPgtype(page.MaxRating)

	var (
		rows []dbq.ReviewViewRow
		err  error
	)
	if page.After == nil {
		rows, err = r.queries.ListReviewsByVehicleFirstPage(ctx, r.db, dbq.ListReviewsByVehicleFirstPageParams{
			VehicleID: vehicleID,
			Limit:     page.Limit,
			MinRating: minRating,
			MaxRating: maxRating,
		})
	} else {
		rows, err = r.queries.ListReviewsByVehicleKeyset(ctx, r.db, dbq.ListReviewsByVehicleKeysetParams{
			VehicleID: vehicleID,
			CreatedAt: pgconv.TimeToPgtype(page.After.CreatedAt),
			ID:        page.After.ID,
			Limit:     page.Limit,
			MinRating: minRating,
			MaxRating: maxRating,
		})
	}
	if err != nil {
		return nil, infra.WrapRepoErr("list reviews of vehicle "+vehicleID.String(), err)
	}
	return mapReviewRows(rows), nil
}

func (r *ReviewReadStore) FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReviewView, error) {
	rows, err := r.queries.ListReviewsByUser(ctx, r.db, dbq.ListReviewsByUserParams{UserID: userID, Limit: limit})
	if err != nil {
		return nil, infra.WrapRepoErr("list reviews of user", err)
	}
	return mapReviewRows(rows), nil
}

func (r *ReviewReadStore) FindByUserAndVehicle(ctx context.Context, userID, vehicleID uuid.UUID) (*queries.ReviewView, error) {
	row, err := r.queries.GetReviewViewByUserAndVehicle(ctx, r.db, dbq.GetReviewViewByUserAndVehicleParams{
		UserID:    userID,
		VehicleID: vehicleID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("load review of user for vehicle", err)
	}
	return toReviewView(row), nil
}

func (r *ReviewReadStore) GetVehicleRatingStats(ctx context.Context, vehicleID uuid.UUID) (*queries.VehicleRatingStats, error) {
	row, err := r.queries.GetVehicleRatingStats(ctx, r.db, vehicleID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// no review has been written yet
			return &queries.VehicleRatingStats{VehicleID: vehicleID}, nil
		}
		return nil, infra.WrapRepoErr("load rating stats", err)
	}
	stats := &queries.VehicleRatingStats{
		VehicleID:    row.VehicleID,
		TotalReviews: row.TotalReviews,
		Rating1Count: row.Rating1Count,
		Rating2Count: row.Rating2Count,
		Rating3Count: row.Rating3Count,
		Rating4Count: row.Rating4Count,
		Rating5Count: row.Rating5Count,
	}
	stats.AverageRating = averageOneDecimal(stats)
	return stats, nil
}

// The stored average is rounded to 2 dp; the histogram gives the exact mean.
func averageOneDecimal(s *queries.VehicleRatingStats) float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	sum := s.Rating1Count + 2*s.Rating2Count + 3*s.Rating3Count + 4*s.Rating4Count + 5*s.Rating5Count
	avg := float64(sum) / float64(s.TotalReviews)
	return math.RoundToEven(avg*10) / 10
}

func toReviewView(row dbq.ReviewViewRow) *queries.ReviewView {
	return &queries.ReviewView{
		ID:          row.ID,
		UserID:      row.UserID,
		Username:    row.Username,
		VehicleID:   row.VehicleID,
		VehicleName: row.VehicleName,
		Rating:      row.Rating,
		Comment:     row.Comment,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func mapReviewRows(rows []dbq.ReviewViewRow) []*queries.ReviewView {
	result := make([]*queries.ReviewView, len(rows))
	for i, row := range rows {
		result[i] = toReviewView(row)
	}
	return result
}
