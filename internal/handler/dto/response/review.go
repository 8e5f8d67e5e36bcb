package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
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

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:          v.ID,
		UserID:      v.UserID,
		Username:    v.Username,
		VehicleID:   v.VehicleID,
		VehicleName: v.VehicleName,
		Rating:      v.Rating,
		Comment:     v.Comment,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromReviewViews(items []*queries.ReviewView) []*ReviewResponse {
	res := make([]*ReviewResponse, len(items))
	for i, it := range items {
		res[i] = FromReviewView(it)
	}
	return res
}

type ReviewListResponse struct {
	Items      []*ReviewResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromReviewList(items []*queries.ReviewView, next *queries.Cursor) *ReviewListResponse {
	res := &ReviewListResponse{Items: FromReviewViews(items)}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
