package shared

import (
	"time"

	"vehicle-rental/internal/domain/user"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsStaff() bool {
	return a.Role.AtLeast(user.RoleStaff)
}

func (a Actor) IsAdmin() bool {
	return a.Role.AtLeast(user.RoleAdmin)
}

// Credentials is the write-side snapshot used to authenticate a user.
type Credentials struct {
	UserID       uuid.UUID
	Username     string
	Role         user.Role
	IsActive     bool
	PasswordHash string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type CategorySnapshot struct {
	ID   uuid.UUID
	Name string
}
