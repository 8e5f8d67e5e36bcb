package converter

import (
	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/pgconv"
)

func ReviewToCreateParams(r *review.Review) dbq.CreateReviewParams {
	return dbq.CreateReviewParams{
		ID:        r.ID(),
		UserID:    r.UserID(),
		VehicleID: r.VehicleID(),
		Rating:    int32(r.Rating().Value()),
		Comment:   r.Comment().String(),
		CreatedAt: pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func ReviewToUpdateParams(r *review.Review) dbq.UpdateReviewParams {
	return dbq.UpdateReviewParams{
		ID:        r.ID(),
		Rating:    int32(r.Rating().Value()),
		Comment:   r.Comment().String(),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

// ReviewFromRow re-validates stored content; a row that fails is corrupt.
func ReviewFromRow(row dbq.Reviews) (*review.Review, error) {
	content, err := review.NewContent(int(row.Rating), row.Comment)
	if err != nil {
		return nil, errs.Wrapf(err, "stored review %s", row.ID)
	}
	return review.Reconstruct(
		row.ID,
		row.UserID,
		row.VehicleID,
		content,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
