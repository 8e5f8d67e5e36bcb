//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	domreview "vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"
	sharedmock "vehicle-rental/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewCommandsTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockCtrl   *gomock.Controller
	uow        *sharedmock.MockUnitOfWork
	tx         *sharedmock.MockTx
	reads      *sharedmock.MockCommandReads
	reviews    *sharedmock.MockReviewRepository
	stats      *sharedmock.MockRatingStatsRepository
	commands   commands.ReviewCommands
	now        time.Time
	vehicleID  uuid.UUID
	authorID   uuid.UUID
	authorRole user.Role
}

func (s *ReviewCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.tx = sharedmock.NewMockTx(s.mockCtrl)
	s.reads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.reviews = sharedmock.NewMockReviewRepository(s.mockCtrl)
	s.stats = sharedmock.NewMockRatingStatsRepository(s.mockCtrl)
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s.vehicleID = uuid.New()
	s.authorID = uuid.New()
	s.authorRole = user.RoleCustomer
	s.commands = commands.NewReviewCommands(s.uow, clock.NewMockClock(s.now))

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reviews().Return(s.reviews).AnyTimes()
	s.tx.EXPECT().RatingStats().Return(s.stats).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
}

func (s *ReviewCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReviewCommandsTestSuite))
}

func (s *ReviewCommandsTestSuite) existing() *domreview.Review {
	rev, err := builder.NewReviewBuilder().
		WithUserID(s.authorID).
		WithVehicleID(s.vehicleID).
		WithRating(4).
		BuildDomain()
	s.Require().NoError(err)
	return rev
}

func (s *ReviewCommandsTestSuite) TestCreate() {
	in := commands.ReviewInput{Rating: 5, Comment: "Smooth ride"}

	s.Run("success: creates and recalculates the vehicle rating", func() {
		id := uuid.New()
		s.reads.EXPECT().VehicleByID(gomock.Any(), s.vehicleID).Return(nil, nil).Times(1)
		s.reviews.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ dbq.DBTX, rev *domreview.Review) (uuid.UUID, error) {
				s.Equal(s.authorID, rev.UserID())
				s.Equal(s.vehicleID, rev.VehicleID())
				return id, nil
			}).Times(1)
		s.stats.EXPECT().Recalc(gomock.Any(), gomock.Any(), s.vehicleID).Return(nil).Times(1)

		got, err := s.commands.Create(s.ctx, s.vehicleID, in, s.authorID)

		s.Require().NoError(err)
		s.Equal(id, got)
	})

	s.Run("error: out of range rating never reaches the database", func() {
		_, err := s.commands.Create(s.ctx, s.vehicleID, commands.ReviewInput{Rating: 6, Comment: "x"}, s.authorID)
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("error: second review of the same vehicle", func() {
		dup := infra.WrapRepoErr("create review", &pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_vehicle_key"})
		s.reads.EXPECT().VehicleByID(gomock.Any(), s.vehicleID).Return(nil, nil).Times(1)
		s.reviews.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, dup).Times(1)

		_, err := s.commands.Create(s.ctx, s.vehicleID, in, s.authorID)

		s.ErrorIs(err, commands.ErrDuplicateReview)
	})

	s.Run("error: unknown vehicle", func() {
		s.reads.EXPECT().VehicleByID(gomock.Any(), s.vehicleID).
			Return(nil, infra.WrapRepoErr("vehicle", nil, infra.KindNotFound)).Times(1)

		_, err := s.commands.Create(s.ctx, s.vehicleID, in, s.authorID)

		s.ErrorIs(err, commands.ErrVehicleNotFound)
	})
}

func (s *ReviewCommandsTestSuite) TestUpdate() {
	s.Run("success: the author edits their review", func() {
		rev := s.existing()
		s.reads.EXPECT().ReviewForUpdate(gomock.Any(), rev.ID()).Return(rev, nil).Times(1)
		s.reviews.EXPECT().Update(gomock.Any(), gomock.Any(), rev).Return(nil).Times(1)
		s.stats.EXPECT().Recalc(gomock.Any(), gomock.Any(), s.vehicleID).Return(nil).Times(1)

		err := s.commands.Update(s.ctx, rev.ID(), commands.ReviewInput{Rating: 2, Comment: "Brakes were soft"},
			shared.Actor{ID: s.authorID, Role: s.authorRole})

		s.Require().NoError(err)
		s.Equal(2, rev.Rating().Value())
		s.Equal(s.now, rev.UpdatedAt())
	})

	s.Run("error: only the author may edit, even staff", func() {
		rev := s.existing()
		s.reads.EXPECT().ReviewForUpdate(gomock.Any(), rev.ID()).Return(rev, nil).Times(1)

		err := s.commands.Update(s.ctx, rev.ID(), commands.ReviewInput{Rating: 1, Comment: "x"},
			shared.Actor{ID: uuid.New(), Role: user.RoleAdmin})

		s.ErrorIs(err, commands.ErrNotOwner)
	})

	s.Run("error: missing review", func() {
		id := uuid.New()
		s.reads.EXPECT().ReviewForUpdate(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("review", nil, infra.KindNotFound)).Times(1)

		err := s.commands.Update(s.ctx, id, commands.ReviewInput{Rating: 3, Comment: "ok"},
			shared.Actor{ID: s.authorID, Role: s.authorRole})

		s.ErrorIs(err, commands.ErrReviewNotFound)
	})
}

func (s *ReviewCommandsTestSuite) TestDelete() {
	s.Run("success: admins may delete any review", func() {
		rev := s.existing()
		s.reads.EXPECT().ReviewForUpdate(gomock.Any(), rev.ID()).Return(rev, nil).Times(1)
		s.reviews.EXPECT().Delete(gomock.Any(), gomock.Any(), rev.ID()).Return(nil).Times(1)
		s.stats.EXPECT().Recalc(gomock.Any(), gomock.Any(), s.vehicleID).Return(nil).Times(1)

		err := s.commands.Delete(s.ctx, rev.ID(), shared.Actor{ID: uuid.New(), Role: user.RoleAdmin})

		s.NoError(err)
	})

	s.Run("error: staff who did not write it are refused", func() {
		rev := s.existing()
		s.reads.EXPECT().ReviewForUpdate(gomock.Any(), rev.ID()).Return(rev, nil).Times(1)

		err := s.commands.Delete(s.ctx, rev.ID(), shared.Actor{ID: uuid.New(), Role: user.RoleStaff})

		s.ErrorIs(err, commands.ErrNotOwner)
	})
}
