package dbq

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	LastLogin    pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type UserProfiles struct {
	UserID         uuid.UUID
	Phone          string
	Address        string
	DrivingLicense string
	IDProof        string
	PictureURL     pgtype.Text
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type Categories struct {
	ID          uuid.UUID
	Name        string
	Description string
	IconClass   string
	CreatedAt   pgtype.Timestamptz
}

type Vehicles struct {
	ID                uuid.UUID
	Name              string
	CategoryID        uuid.UUID
	VehicleType       string
	Brand             string
	Model             string
	Year              int32
	FuelType          string
	Transmission      string
	Seats             int32
	PricePerDayCents  int64
	PricePerHourCents int64
	ImageURL          pgtype.Text
	Description       string
	Features          string
	IsAvailable       bool
	Mileage           string
	Color             string
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

type Bookings struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	VehicleID        uuid.UUID
	StartDate        pgtype.Timestamptz
	EndDate          pgtype.Timestamptz
	PickupLocation   string
	ReturnLocation   string
	TotalAmountCents int64
	Status           string
	PaymentStatus    string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Reviews struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VehicleID uuid.UUID
	Rating    int32
	Comment   string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type VehicleRatingStats struct {
	VehicleID     uuid.UUID
	TotalReviews  int32
	AverageRating pgtype.Numeric
	Rating1Count  int32
	Rating2Count  int32
	Rating3Count  int32
	Rating4Count  int32
	Rating5Count  int32
	UpdatedAt     pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key              uuid.UUID
	UserID           uuid.UUID
	Endpoint         string
	RequestHash      string
	Status           string
	ResponseBodyHash pgtype.Text
	ResultBookingID  pgtype.UUID
	ExpiresAt        pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
}

type NotificationJobs struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int32
	RunAt     pgtype.Timestamptz
	LastError pgtype.Text
	SentAt    pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
