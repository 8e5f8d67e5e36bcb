package queries

import (
	"time"

	"github.com/google/uuid"
)

// VehicleListItem is the catalog card of a vehicle
type VehicleListItem struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	CategoryID        uuid.UUID `json:"category_id"`
	CategoryName      string    `json:"category_name"`
	VehicleType       string    `json:"vehicle_type"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	Year              int32     `json:"year"`
	FuelType          string    `json:"fuel_type"`
	Transmission      string    `json:"transmission"`
	Seats             int32     `json:"seats"`
	PricePerDayCents  int64     `json:"price_per_day_cents"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	ImageURL          *string   `json:"image_url,omitempty"`
	IsAvailable       bool      `json:"is_available"`
}

// VehicleView is the full vehicle record shown on the detail page
type VehicleView struct {
	VehicleListItem
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Mileage     string    `json:"mileage"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VehicleFilter struct {
	Type          *string
	Brand         *string
	MinPriceCents *int64
	MaxPriceCents *int64
	MinSeats      *int
	CategoryID    *uuid.UUID
}

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconClass   string    `json:"icon_class"`
}

type TypeCount struct {
	VehicleType string `json:"vehicle_type"`
	Label       string `json:"label"`
	Count       int64  `json:"count"`
}

type BookingView struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Username         string    `json:"username"`
	UserEmail        string    `json:"user_email"`
	VehicleID        uuid.UUID `json:"vehicle_id"`
	VehicleName      string    `json:"vehicle_name"`
	VehicleType      string    `json:"vehicle_type"`
	VehicleBrand     string    `json:"vehicle_brand"`
	VehicleModel     string    `json:"vehicle_model"`
	VehicleImage     *string   `json:"vehicle_image,omitempty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	PickupLocation   string    `json:"pickup_location"`
	ReturnLocation   string    `json:"return_location"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ProfileView struct {
	UserID         uuid.UUID `json:"user_id"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	DrivingLicense string    `json:"driving_license"`
	IDProof        string    `json:"id_proof"`
	PictureURL     *string   `json:"picture_url,omitempty"`
}
