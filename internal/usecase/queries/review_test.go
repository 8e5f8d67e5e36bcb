//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/tests/common/builder"
	queriesmock "vehicle-rental/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewQueriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockCtrl  *gomock.Controller
	store     *queriesmock.MockReviewReadStore
	queries   queries.ReviewQueries
	vehicleID uuid.UUID
}

func (s *ReviewQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockReviewReadStore(s.mockCtrl)
	s.queries = queries.NewReviewQueries(s.store)
	s.vehicleID = uuid.New()
}

func (s *ReviewQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReviewQueriesTestSuite))
}

// reviews returns n views of the suite vehicle, one minute apart, newest first.
func (s *ReviewQueriesTestSuite) reviews(n int) []*queries.ReviewView {
	out := make([]*queries.ReviewView, n)
	for i := range out {
		out[i] = builder.NewReviewBuilder().
			WithVehicleID(s.vehicleID).
			With(func(b *builder.ReviewBuilder) { b.CreatedAt = b.CreatedAt.Add(-time.Duration(i) * time.Minute) }).
			BuildViewQuery()
	}
	return out
}

func (s *ReviewQueriesTestSuite) TestListByVehicle() {
	s.Run("success: an extra row yields a cursor at the last returned review", func() {
		rows := s.reviews(3)
		s.store.EXPECT().FindByVehicle(gomock.Any(), s.vehicleID, queries.ReviewPage{Limit: 3}).
			Return(rows, nil).Times(1)

		got, next, err := s.queries.ListByVehicle(s.ctx, s.vehicleID, queries.ReviewFilters{}, nil, 2)

		s.Require().NoError(err)
		s.Len(got, 2)
		s.Require().NotNil(next)
		s.NotEmpty(next.After)

		// the cursor resumes right after rows[1]
		s.store.EXPECT().FindByVehicle(gomock.Any(), s.vehicleID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, page queries.ReviewPage) ([]*queries.ReviewView, error) {
				s.Require().NotNil(page.After)
				s.Equal(rows[1].ID, page.After.ID)
				s.True(page.After.CreatedAt.Equal(rows[1].CreatedAt))
				return rows[2:], nil
			}).Times(1)

		got, next, err = s.queries.ListByVehicle(s.ctx, s.vehicleID, queries.ReviewFilters{}, next, 2)

		s.Require().NoError(err)
		s.Len(got, 1)
		s.Nil(next)
	})

	s.Run("success: limit is clamped and filters are passed through", func() {
		minRating, maxRating := 2, 4
		s.store.EXPECT().FindByVehicle(gomock.Any(), s.vehicleID, queries.ReviewPage{
			Limit:     queries.MaxReviewLimit + 1,
			MinRating: &minRating,
			MaxRating: &maxRating,
		}).Return(nil, nil).Times(1)

		got, next, err := s.queries.ListByVehicle(s.ctx, s.vehicleID,
			queries.ReviewFilters{MinRating: &minRating, MaxRating: &maxRating}, &queries.Cursor{}, 500)

		s.Require().NoError(err)
		s.Empty(got)
		s.Nil(next)
	})

	s.Run("error: rating filter out of range", func() {
		bad := 6
		_, _, err := s.queries.ListByVehicle(s.ctx, s.vehicleID, queries.ReviewFilters{MaxRating: &bad}, nil, 0)

		s.ErrorIs(err, queries.ErrInvalidRatingFilter)
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("error: garbage cursor", func() {
		_, _, err := s.queries.ListByVehicle(s.ctx, s.vehicleID, queries.ReviewFilters{}, &queries.Cursor{After: "%%%"}, 0)

		s.ErrorIs(err, queries.ErrInvalidCursor)
	})
}

func (s *ReviewQueriesTestSuite) TestGetByID() {
	s.Run("error: missing review maps to not found", func() {
		id := uuid.New()
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("load review view", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := s.queries.GetByID(s.ctx, id)

		s.ErrorIs(err, queries.ErrReviewNotFound)
	})
}

func (s *ReviewQueriesTestSuite) TestGetVehicleRatingStats() {
	want := builder.NewReviewBuilder().WithVehicleID(s.vehicleID).BuildRatingStats()
	s.store.EXPECT().GetVehicleRatingStats(gomock.Any(), s.vehicleID).Return(want, nil).Times(1)

	got, err := s.queries.GetVehicleRatingStats(s.ctx, s.vehicleID)

	s.Require().NoError(err)
	s.Equal(want, got)
}
