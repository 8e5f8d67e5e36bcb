package shared

import (
	"context"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/category"
	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra/dbq"

	"github.com/google/uuid"
)

// UnitOfWork runs booking, catalog and review writes atomically.
type UnitOfWork interface {
	// Within runs fn in one transaction and retries it on serialization
	// failures and deadlocks, so fn must be safe to run more than once.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads reads write-side state outside any transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Categories() CategoryRepository
	Vehicles() VehicleRepository
	Bookings() BookingRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() dbq.DBTX
}

// CommandReads loads write-side state. Inside a Tx the *ForUpdate variants
// hold row locks until commit.
type CommandReads interface {
	CredentialsByLogin(ctx context.Context, identifier string) (*Credentials, error)
	CredentialsByID(ctx context.Context, id uuid.UUID) (*Credentials, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*CategorySnapshot, error)
	CategoryByName(ctx context.Context, name string) (*CategorySnapshot, error)
	VehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	VehicleForUpdate(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	VehicleNameExists(ctx context.Context, name string) (bool, error)
	BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CountOverlappingBookings(ctx context.Context, vehicleID uuid.UUID, slot booking.TimeSlot) (int64, error)
	ReviewForUpdate(ctx context.Context, id uuid.UUID) (*review.Review, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx dbq.DBTX, userID uuid.UUID) error
	SaveProfile(ctx context.Context, tx dbq.DBTX, p *user.Profile, now time.Time) error
	SaveProfilePicture(ctx context.Context, tx dbq.DBTX, userID uuid.UUID, url string, now time.Time) error
}

type CategoryRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, c *category.Category) (uuid.UUID, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	Update(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error
	SaveAvailability(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error
	SaveImage(ctx context.Context, tx dbq.DBTX, v *vehicle.Vehicle) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, b *booking.Booking) (uuid.UUID, error)
	SaveState(ctx context.Context, tx dbq.DBTX, b *booking.Booking) error
}

type ReviewRepository interface {
	Create(ctx context.Context, tx dbq.DBTX, rev *review.Review) (uuid.UUID, error)
	Update(ctx context.Context, tx dbq.DBTX, rev *review.Review) error
	Delete(ctx context.Context, tx dbq.DBTX, reviewID uuid.UUID) error
}

type RatingStatsRepository interface {
	Recalc(ctx context.Context, tx dbq.DBTX, vehicleID uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx dbq.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx dbq.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error
	ReclaimExpired(ctx context.Context, tx dbq.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx dbq.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
