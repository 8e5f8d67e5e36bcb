package repository

import (
	"context"

	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type ReviewWriteQueries interface {
	CreateReview(ctx context.Context, db dbq.DBTX, arg dbq.CreateReviewParams) (uuid.UUID, error)
	UpdateReview(ctx context.Context, db dbq.DBTX, arg dbq.UpdateReviewParams) (int64, error)
	DeleteReview(ctx context.Context, db dbq.DBTX, id uuid.UUID) (int64, error)
}

type ReviewRepository struct {
	queries ReviewWriteQueries
	db      dbq.DBTX
}

func NewReviewRepository(queries ReviewWriteQueries, db dbq.DBTX) *ReviewRepository {
	return &ReviewRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, tx dbq.DBTX, rev *review.Review) (uuid.UUID, error) {
	id, err := r.queries.CreateReview(ctx, tx, converter.ReviewToCreateParams(rev))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}

func (r *ReviewRepository) Update(ctx context.Context, tx dbq.DBTX, rev *review.Review) error {
	n, err := r.queries.UpdateReview(ctx, tx, converter.ReviewToUpdateParams(rev))
	return rowsAffected(n, err, "review")
}

func (r *ReviewRepository) Delete(ctx context.Context, tx dbq.DBTX, reviewID uuid.UUID) error {
	n, err := r.queries.DeleteReview(ctx, tx, reviewID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete review", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}
