//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"vehicle-rental/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContent(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		comment string
		want    string
		err     error
	}{
		{name: "lowest rating", rating: review.MinRating, comment: "ok", want: "ok"},
		{name: "highest rating", rating: review.MaxRating, comment: "great", want: "great"},
		{name: "comment is trimmed", rating: 3, comment: "  Brakes felt soft ", want: "Brakes felt soft"},
		{name: "limit counts characters", rating: 4, comment: strings.Repeat("é", review.MaxCommentLength), want: strings.Repeat("é", review.MaxCommentLength)},
		{name: "rating zero", rating: 0, comment: "fine", err: review.ErrInvalidRating},
		{name: "rating six", rating: 6, comment: "fine", err: review.ErrInvalidRating},
		{name: "blank comment", rating: 4, comment: " \t ", err: review.ErrEmptyComment},
		{name: "comment one over", rating: 4, comment: strings.Repeat("a", review.MaxCommentLength+1), err: review.ErrCommentTooLong},
		{name: "rating reported before comment", rating: 9, comment: "", err: review.ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := review.NewContent(tt.rating, tt.comment)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rating, got.Rating.Value())
			assert.Equal(t, tt.want, got.Comment.String())
		})
	}
}

func TestReviewLifecycle(t *testing.T) {
	posted := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	userID, vehicleID := uuid.New(), uuid.New()
	first, err := review.NewContent(5, "Smooth ride")
	require.NoError(t, err)

	rev := review.NewReview(userID, vehicleID, first, posted)

	assert.NotEqual(t, uuid.Nil, rev.ID())
	assert.Equal(t, userID, rev.UserID())
	assert.Equal(t, vehicleID, rev.VehicleID())
	assert.Equal(t, posted, rev.UpdatedAt())

	second, err := review.NewContent(2, "Clutch slipped on day two")
	require.NoError(t, err)
	rev.Edit(second, posted.Add(48*time.Hour))

	assert.Equal(t, 2, rev.Rating().Value())
	assert.Equal(t, "Clutch slipped on day two", rev.Comment().String())
	assert.Equal(t, posted, rev.CreatedAt())
	assert.Equal(t, posted.Add(48*time.Hour), rev.UpdatedAt())
}
