package queries

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DetailReviewLimit = 20
	SimilarLimit      = 4
)

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListAvailable(ctx context.Context, f VehicleFilter, limit, offset int32) ([]*VehicleListItem, error)
	CountAvailable(ctx context.Context, f VehicleFilter) (int64, error)
	ListFeatured(ctx context.Context, limit int32) ([]*VehicleListItem, error)
	ListSimilar(ctx context.Context, vehicleType string, excludeID uuid.UUID, limit int32) ([]*VehicleListItem, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
}

type VehiclePage struct {
	Items []*VehicleListItem `json:"items"`
	Page  Page               `json:"page"`
}

type VehicleDetail struct {
	Vehicle       *VehicleView       `json:"vehicle"`
	Reviews       []*ReviewView      `json:"reviews"`
	ReviewCount   int32              `json:"review_count"`
	AverageRating float64            `json:"average_rating"`
	UserReview    *ReviewView        `json:"user_review,omitempty"`
	Similar       []*VehicleListItem `json:"similar"`
}

type PriceQuote struct {
	VehicleID   uuid.UUID   `json:"vehicle_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Hours       float64     `json:"hours"`
	Tier        string      `json:"tier"`
	TotalAmount money.Money `json:"-"`
	Available   bool        `json:"available"`
}

type VehicleQueries interface {
	List(ctx context.Context, f VehicleFilter, rawPage string) (*VehiclePage, error)
	GetDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*VehicleDetail, error)
	Quote(ctx context.Context, id uuid.UUID, start, end time.Time) (*PriceQuote, error)
}

type vehicleQueriesImpl struct {
	vehicles   VehicleReadStore
	reviews    ReviewReadStore
	cache      CatalogCache
	calculator booking.PriceCalculator
	clock      clock.Clock
}

func NewVehicleQueries(
	vehicles VehicleReadStore,
	reviews ReviewReadStore,
	cache CatalogCache,
	calculator booking.PriceCalculator,
	clk clock.Clock,
) VehicleQueries {
	return &vehicleQueriesImpl{
		vehicles:   vehicles,
		reviews:    reviews,
		cache:      cache,
		calculator: calculator,
		clock:      clk,
	}
}

func (q *vehicleQueriesImpl) List(ctx context.Context, f VehicleFilter, rawPage string) (*VehiclePage, error) {
	if negative(f.MinPriceCents) || negative(f.MaxPriceCents) {
		return nil, ErrInvalidPriceFilter
	}
	total, err := q.vehicles.CountAvailable(ctx, f)
	if err != nil {
		return nil, err
	}
	size := VehiclePageSize
	if f.CategoryID != nil {
		size = CategoryPageSize
	}
	page := NewPage(ParsePageNumber(rawPage), size, total)
	items, err := q.vehicles.ListAvailable(ctx, f, int32(page.Size), int32(page.Offset()))
	if err != nil {
		return nil, err
	}
	return &VehiclePage{Items: items, Page: page}, nil
}

func (q *vehicleQueriesImpl) GetDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*VehicleDetail, error) {
	v, err := q.findVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := q.reviews.FindByVehicle(ctx, id, ReviewPage{Limit: DetailReviewLimit})
	if err != nil {
		return nil, err
	}
	stats, err := q.reviews.GetVehicleRatingStats(ctx, id)
	if err != nil {
		return nil, err
	}
	similar, err := q.vehicles.ListSimilar(ctx, v.VehicleType, v.ID, SimilarLimit)
	if err != nil {
		return nil, err
	}

	detail := &VehicleDetail{
		Vehicle:       v,
		Reviews:       reviews,
		ReviewCount:   stats.TotalReviews,
		AverageRating: stats.AverageRating,
		Similar:       similar,
	}

	if viewerID != nil {
		mine, err := q.reviews.FindByUserAndVehicle(ctx, *viewerID, id)
		switch {
		case err == nil:
			detail.UserReview = mine
		case !infra.IsKind(err, infra.KindNotFound):
			return nil, err
		}
	}
	return detail, nil
}

// Quote prices an interval exactly as booking creation would, without saving anything.
func (q *vehicleQueriesImpl) Quote(ctx context.Context, id uuid.UUID, start, end time.Time) (*PriceQuote, error) {
	if err := booking.Validate(start, end, q.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	v, err := q.findVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	rates := booking.Rates{
		PerHour: money.FromCents(v.PricePerHourCents),
		PerDay:  money.FromCents(v.PricePerDayCents),
	}
	tier := "hourly"
	if slot.Duration() > booking.TierBoundary {
		tier = "daily"
	}
	return &PriceQuote{
		VehicleID:   v.ID,
		StartDate:   start,
		EndDate:     end,
		Hours:       slot.Duration().Hours(),
		Tier:        tier,
		TotalAmount: q.calculator.TotalAmount(rates, slot),
		Available:   v.IsAvailable,
	}, nil
}

// findVehicle serves the vehicle record from the catalog cache when possible.
func (q *vehicleQueriesImpl) findVehicle(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	key := VehicleCacheKey(id)
	var cached VehicleView
	if q.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := q.vehicles.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	q.cache.Set(ctx, key, v)
	return v, nil
}

func negative(v *int64) bool {
	return v != nil && *v < 0
}
