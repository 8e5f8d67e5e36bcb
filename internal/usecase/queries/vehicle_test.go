//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/tests/common/builder"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VehicleQueriesTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	store    *queriesmock.MockVehicleReadStore
	reviews  *queriesmock.MockReviewReadStore
	cache    *queriesmock.MockCatalogCache
	queries  queries.VehicleQueries
	now      time.Time
}

func (s *VehicleQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockVehicleReadStore(s.mockCtrl)
	s.reviews = queriesmock.NewMockReviewReadStore(s.mockCtrl)
	s.cache = queriesmock.NewMockCatalogCache(s.mockCtrl)
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s.queries = queries.NewVehicleQueries(s.store, s.reviews, s.cache, booking.NewTieredPriceCalculator(), clock.NewMockClock(s.now))
}

func (s *VehicleQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVehicleQueriesSuite(t *testing.T) {
	suite.Run(t, new(VehicleQueriesTestSuite))
}

func (s *VehicleQueriesTestSuite) view(id uuid.UUID) *queries.VehicleView {
	return &queries.VehicleView{VehicleListItem: queries.VehicleListItem{
		ID:                id,
		Name:              "Honda Activa 6G",
		VehicleType:       "bike",
		PricePerHourCents: 5000,
		PricePerDayCents:  50000,
		IsAvailable:       true,
	}}
}

func (s *VehicleQueriesTestSuite) TestList() {
	s.Run("success: page past the end is clamped to the last page", func() {
		f := queries.VehicleFilter{}
		s.store.EXPECT().CountAvailable(gomock.Any(), f).Return(int64(30), nil).Times(1)
		s.store.EXPECT().ListAvailable(gomock.Any(), f, int32(queries.VehiclePageSize), int32(24)).
			Return([]*queries.VehicleListItem{{ID: uuid.New()}}, nil).Times(1)

		page, err := s.queries.List(s.ctx, f, "99")

		s.Require().NoError(err)
		s.Equal(3, page.Page.Number)
		s.Equal(3, page.Page.TotalPages)
		s.False(page.Page.HasNext)
		s.True(page.Page.HasPrev)
		s.Len(page.Items, 1)
	})

	s.Run("success: category listings use the smaller page size", func() {
		categoryID := uuid.New()
		f := queries.VehicleFilter{CategoryID: &categoryID}
		s.store.EXPECT().CountAvailable(gomock.Any(), f).Return(int64(0), nil).Times(1)
		s.store.EXPECT().ListAvailable(gomock.Any(), f, int32(queries.CategoryPageSize), int32(0)).
			Return(nil, nil).Times(1)

		page, err := s.queries.List(s.ctx, f, "not-a-number")

		s.Require().NoError(err)
		s.Equal(1, page.Page.Number)
		s.Equal(1, page.Page.TotalPages)
	})

	s.Run("error: negative price bound", func() {
		minPrice := int64(-1)

		_, err := s.queries.List(s.ctx, queries.VehicleFilter{MinPriceCents: &minPrice}, "1")

		s.ErrorIs(err, queries.ErrInvalidPriceFilter)
	})
}

func (s *VehicleQueriesTestSuite) TestQuote() {
	start := s.now.Add(48 * time.Hour)

	s.Run("success: hourly tier served from cache", func() {
		id := uuid.New()
		s.cache.EXPECT().Get(gomock.Any(), queries.VehicleCacheKey(id), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dst any) bool {
				*dst.(*queries.VehicleView) = *s.view(id)
				return true
			}).Times(1)

		quote, err := s.queries.Quote(s.ctx, id, start, start.Add(5*time.Hour))

		s.Require().NoError(err)
		s.Equal("hourly", quote.Tier)
		s.Equal(int64(25000), quote.TotalAmount.Cents())
		s.InDelta(5.0, quote.Hours, 0.001)
		s.True(quote.Available)
	})

	s.Run("success: daily tier bills whole days and fills the cache", func() {
		id := uuid.New()
		v := s.view(id)
		s.cache.EXPECT().Get(gomock.Any(), queries.VehicleCacheKey(id), gomock.Any()).Return(false).Times(1)
		s.store.EXPECT().FindByID(gomock.Any(), id).Return(v, nil).Times(1)
		s.cache.EXPECT().Set(gomock.Any(), queries.VehicleCacheKey(id), v).Times(1)

		quote, err := s.queries.Quote(s.ctx, id, start, start.Add(50*time.Hour))

		s.Require().NoError(err)
		s.Equal("daily", quote.Tier)
		s.Equal(int64(100000), quote.TotalAmount.Cents())
	})

	s.Run("error: invalid intervals are rejected before any lookup", func() {
		id := uuid.New()
		cases := []struct {
			name       string
			start, end time.Time
			want       error
		}{
			{"past start", s.now.Add(-time.Hour), s.now.Add(2 * time.Hour), booking.ErrPastStart},
			{"reversed", start, start.Add(-time.Hour), booking.ErrInvalidRange},
			{"under an hour", start, start.Add(30 * time.Minute), booking.ErrTooShort},
		}
		for _, tc := range cases {
			_, err := s.queries.Quote(s.ctx, id, tc.start, tc.end)
			s.True(errs.Is(err, tc.want), tc.name)
			s.True(errs.Is(err, errs.ErrValidation), tc.name)
		}
	})

	s.Run("error: unknown vehicle", func() {
		id := uuid.New()
		s.cache.EXPECT().Get(gomock.Any(), queries.VehicleCacheKey(id), gomock.Any()).Return(false).Times(1)
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("vehicle", nil, infra.KindNotFound)).Times(1)

		_, err := s.queries.Quote(s.ctx, id, start, start.Add(2*time.Hour))

		s.ErrorIs(err, queries.ErrVehicleNotFound)
	})
}

func (s *VehicleQueriesTestSuite) TestGetDetail() {
	s.Run("success: anonymous viewer gets reviews, stats and similar vehicles", func() {
		id := uuid.New()
		v := s.view(id)
		rv := builder.NewReviewBuilder().WithVehicleID(id).BuildViewQuery()
		stats := builder.NewReviewBuilder().WithVehicleID(id).BuildRatingStats()

		s.cache.EXPECT().Get(gomock.Any(), queries.VehicleCacheKey(id), gomock.Any()).Return(false).Times(1)
		s.store.EXPECT().FindByID(gomock.Any(), id).Return(v, nil).Times(1)
		s.cache.EXPECT().Set(gomock.Any(), queries.VehicleCacheKey(id), v).Times(1)
		s.reviews.EXPECT().FindByVehicle(gomock.Any(), id, queries.ReviewPage{Limit: queries.DetailReviewLimit}).
			Return([]*queries.ReviewView{rv}, nil).Times(1)
		s.reviews.EXPECT().GetVehicleRatingStats(gomock.Any(), id).Return(stats, nil).Times(1)
		s.store.EXPECT().ListSimilar(gomock.Any(), "bike", id, int32(queries.SimilarLimit)).
			Return([]*queries.VehicleListItem{{ID: uuid.New()}}, nil).Times(1)

		detail, err := s.queries.GetDetail(s.ctx, id, nil)

		s.Require().NoError(err)
		s.Equal(v, detail.Vehicle)
		s.Equal([]*queries.ReviewView{rv}, detail.Reviews)
		s.Equal(int32(10), detail.ReviewCount)
		s.InDelta(3.6, detail.AverageRating, 1e-9)
		s.Len(detail.Similar, 1)
		s.Nil(detail.UserReview)
	})

	s.Run("success: signed-in viewer without a review", func() {
		id, viewer := uuid.New(), uuid.New()

		s.cache.EXPECT().Get(gomock.Any(), queries.VehicleCacheKey(id), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dst any) bool {
				*dst.(*queries.VehicleView) = *s.view(id)
				return true
			}).Times(1)
		s.reviews.EXPECT().FindByVehicle(gomock.Any(), id, gomock.Any()).Return(nil, nil).Times(1)
		s.reviews.EXPECT().GetVehicleRatingStats(gomock.Any(), id).
			Return(&queries.VehicleRatingStats{VehicleID: id}, nil).Times(1)
		s.store.EXPECT().ListSimilar(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(nil, nil).Times(1)
		s.reviews.EXPECT().FindByUserAndVehicle(gomock.Any(), viewer, id).
			Return(nil, infra.WrapRepoErr("load review of user for vehicle", errs.New("no rows"), infra.KindNotFound)).Times(1)

		detail, err := s.queries.GetDetail(s.ctx, id, &viewer)

		s.Require().NoError(err)
		s.Nil(detail.UserReview)
		s.Zero(detail.AverageRating)
	})

	s.Run("error: unknown vehicle", func() {
		id := uuid.New()
		s.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false).Times(1)
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("load vehicle", errs.New("no rows"), infra.KindNotFound)).Times(1)

		_, err := s.queries.GetDetail(s.ctx, id, nil)

		s.ErrorIs(err, queries.ErrVehicleNotFound)
	})
}
