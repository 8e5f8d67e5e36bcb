package request

import (
	"vehicle-rental/internal/pkg/patch"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

func (r *CreateReviewRequest) ToInput() commands.ReviewInput {
	return commands.ReviewInput{Rating: r.Rating, Comment: r.Comment}
}

// UpdateReviewRequest is a partial update; omitted fields keep their value.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

func (r *UpdateReviewRequest) ToInput(existing *queries.ReviewView) commands.ReviewInput {
	return commands.ReviewInput{
		Rating:  patch.Value(r.Rating, int(existing.Rating)),
		Comment: patch.Text(r.Comment, existing.Comment),
	}
}

type ReviewListQuery struct {
	MinRating *int   `form:"min_rating"`
	MaxRating *int   `form:"max_rating"`
	After     string `form:"after"`
	Limit     int    `form:"limit"`
}

func (q ReviewListQuery) Filters() queries.ReviewFilters {
	return queries.ReviewFilters{MinRating: q.MinRating, MaxRating: q.MaxRating}
}

// Cursor is nil on the first page.
func (q ReviewListQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}
