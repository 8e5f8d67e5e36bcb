package commands

import (
	"context"

	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const constraintUserVehicleReview = "reviews_user_vehicle_key"

type ReviewInput struct {
	Rating  int
	Comment string
}

type ReviewCommands interface {
	Create(ctx context.Context, vehicleID uuid.UUID, in ReviewInput, userID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, reviewID uuid.UUID, in ReviewInput, actor shared.Actor) error
	Delete(ctx context.Context, reviewID uuid.UUID, actor shared.Actor) error
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

// Create adds the user's review of a vehicle; a second review of the same
// vehicle is rejected.
func (c *reviewCommandsImpl) Create(ctx context.Context, vehicleID uuid.UUID, in ReviewInput, userID uuid.UUID) (uuid.UUID, error) {
	content, err := review.NewContent(in.Rating, in.Comment)
	if err != nil {
		return uuid.Nil, invalid(err)
	}
	rev := review.NewReview(userID, vehicleID, content, c.clock.Now())

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().VehicleByID(ctx, vehicleID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}

		id, err := tx.Reviews().Create(ctx, tx.DB(), rev)
		if err != nil {
			switch {
			case infra.IsKind(err, infra.KindDuplicateKey) && infra.ConstraintName(err) == constraintUserVehicleReview:
				return ErrDuplicateReview
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrVehicleNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		createdID = id
		return c.recalc(ctx, tx, vehicleID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *reviewCommandsImpl) Update(ctx context.Context, reviewID uuid.UUID, in ReviewInput, actor shared.Actor) error {
	content, err := review.NewContent(in.Rating, in.Comment)
	if err != nil {
		return invalid(err)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := c.lockReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if rev.UserID() != actor.ID {
			return ErrNotOwner
		}

		rev.Edit(content, c.clock.Now())
		if err := tx.Reviews().Update(ctx, tx.DB(), rev); err != nil {
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return c.recalc(ctx, tx, rev.VehicleID())
	})
}

// Delete removes a review; admins may delete any review.
func (c *reviewCommandsImpl) Delete(ctx context.Context, reviewID uuid.UUID, actor shared.Actor) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := c.lockReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		if rev.UserID() != actor.ID && !actor.IsAdmin() {
			return ErrNotOwner
		}

		if err := tx.Reviews().Delete(ctx, tx.DB(), reviewID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReviewNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return c.recalc(ctx, tx, rev.VehicleID())
	})
}

func (c *reviewCommandsImpl) lockReview(ctx context.Context, tx shared.Tx, id uuid.UUID) (*review.Review, error) {
	rev, err := tx.Reads().ReviewForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}
	return rev, nil
}

func (c *reviewCommandsImpl) recalc(ctx context.Context, tx shared.Tx, vehicleID uuid.UUID) error {
	if err := tx.RatingStats().Recalc(ctx, tx.DB(), vehicleID); err != nil {
		return errs.Mark(err, ErrDatabaseFailed)
	}
	return nil
}
