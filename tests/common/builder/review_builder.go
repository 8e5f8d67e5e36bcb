//go:build unit || e2e

package builder

import (
	"time"

	domreview "vehicle-rental/internal/domain/review"
	reqdto "vehicle-rental/internal/handler/dto/request"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReviewBuilder describes one review; every Build method shares its ID and
// timestamps.
type ReviewBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Username    string
	VehicleID   uuid.UUID
	VehicleName string
	Rating      int
	Comment     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	posted := fixedJoined.Add(30 * 24 * time.Hour)
	return &ReviewBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Username:    "rider",
		VehicleID:   uuid.New(),
		VehicleName: "Honda Activa 6G",
		Rating:      5,
		Comment:     "Smooth ride, clean vehicle",
		CreatedAt:   posted,
		UpdatedAt:   posted,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) WithUserID(userID uuid.UUID) *ReviewBuilder {
	r.UserID = userID
	return r
}

func (r *ReviewBuilder) WithVehicleID(vehicleID uuid.UUID) *ReviewBuilder {
	r.VehicleID = vehicleID
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

// AsPoorRating is the one-star complaint used by stats tests.
func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Comment = "Brakes felt soft"
	return r
}

// BuildDomain validates the content the same way the create command does.
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	content, err := domreview.NewContent(r.Rating, r.Comment)
	if err != nil {
		return nil, err
	}
	return domreview.Reconstruct(r.ID, r.UserID, r.VehicleID, content, r.CreatedAt, r.UpdatedAt), nil
}

func (r *ReviewBuilder) BuildInfra() dbq.Reviews {
	return dbq.Reviews{
		ID:        r.ID,
		UserID:    r.UserID,
		VehicleID: r.VehicleID,
		Rating:    int32(r.Rating),
		Comment:   r.Comment,
		CreatedAt: pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: r.UpdatedAt, Valid: true},
	}
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{Rating: r.Rating, Comment: r.Comment}
}

func (r *ReviewBuilder) BuildUpdateRequestDTO() reqdto.UpdateReviewRequest {
	rating, comment := r.Rating, r.Comment
	return reqdto.UpdateReviewRequest{Rating: &rating, Comment: &comment}
}

func (r *ReviewBuilder) BuildViewQuery() *queries.ReviewView {
	return &queries.ReviewView{
		ID:          r.ID,
		UserID:      r.UserID,
		Username:    r.Username,
		VehicleID:   r.VehicleID,
		VehicleName: r.VehicleName,
		Rating:      int32(r.Rating),
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *ReviewBuilder) BuildRatingStats() *queries.VehicleRatingStats {
	return &queries.VehicleRatingStats{
		VehicleID:     r.VehicleID,
		TotalReviews:  10,
		AverageRating: 3.6,
		Rating1Count:  1,
		Rating2Count:  1,
		Rating3Count:  2,
		Rating4Count:  3,
		Rating5Count:  3,
	}
}
