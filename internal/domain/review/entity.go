package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating of one vehicle. The one-review-per-vehicle
// rule is enforced by storage, not here.
type Review struct {
	id        uuid.UUID
	userID    uuid.UUID
	vehicleID uuid.UUID
	content   Content
	createdAt time.Time
	updatedAt time.Time
}

func NewReview(userID, vehicleID uuid.UUID, content Content, now time.Time) *Review {
	return Reconstruct(uuid.New(), userID, vehicleID, content, now, now)
}

func Reconstruct(id, userID, vehicleID uuid.UUID, content Content, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:        id,
		userID:    userID,
		vehicleID: vehicleID,
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Review) Edit(content Content, now time.Time) {
	r.content = content
	r.updatedAt = now
}

func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) UserID() uuid.UUID    { return r.userID }
func (r *Review) VehicleID() uuid.UUID { return r.vehicleID }
func (r *Review) Rating() Rating       { return r.content.Rating }
func (r *Review) Comment() Comment     { return r.content.Comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }
