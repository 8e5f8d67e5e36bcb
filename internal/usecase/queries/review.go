package queries

import (
	"context"
	"time"

	"vehicle-rental/internal/infra"

	"github.com/google/uuid"
)

type ReviewView struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VehicleRatingStats struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	TotalReviews  int32     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	Rating1Count  int32     `json:"rating_1_count"`
	Rating2Count  int32     `json:"rating_2_count"`
	Rating3Count  int32     `json:"rating_3_count"`
	Rating4Count  int32     `json:"rating_4_count"`
	Rating5Count  int32     `json:"rating_5_count"`
}

type ReviewFilters struct {
	MinRating *int
	MaxRating *int
}

// ReviewPage selects reviews of one vehicle, newest first. After is nil for
// the first page.
type ReviewPage struct {
	After     *ReviewKey
	Limit     int32
	MinRating *int
	MaxRating *int
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindByVehicle(ctx context.Context, vehicleID uuid.UUID, page ReviewPage) ([]*ReviewView, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReviewView, error)
	FindByUserAndVehicle(ctx context.Context, userID, vehicleID uuid.UUID) (*ReviewView, error)
	GetVehicleRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error)
	GetVehicleRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error)
}

type reviewQueriesImpl struct {
	repo ReviewReadStore
}

func NewReviewQueries(repo ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByVehicle(ctx context.Context, vehicleID uuid.UUID, filters ReviewFilters, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error) {
	if !validRating(filters.MinRating) || !validRating(filters.MaxRating) {
		return nil, nil, ErrInvalidRatingFilter
	}
	limit = reviewLimit(limit)
	// one extra row tells whether another page exists
	page := ReviewPage{Limit: int32(limit + 1), MinRating: filters.MinRating, MaxRating: filters.MaxRating}
	if cursor != nil && cursor.After != "" {
		key, err := decodeReviewKey(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		page.After = &key
	}
	rows, err := q.repo.FindByVehicle(ctx, vehicleID, page)
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		next = cursorAfter(rows[limit-1])
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *reviewQueriesImpl) GetVehicleRatingStats(ctx context.Context, vehicleID uuid.UUID) (*VehicleRatingStats, error) {
	return q.repo.GetVehicleRatingStats(ctx, vehicleID)
}

func validRating(v *int) bool {
	return v == nil || (*v >= 1 && *v <= 5)
}
