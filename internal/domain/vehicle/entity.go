package vehicle

import (
	"errors"
	"strings"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"

	"github.com/google/uuid"
)

const (
	MaxNameLength   = 200
	MaxBrandLength  = 100
	MaxModelLength  = 100
	MaxShortLength  = 50
	MinYear         = 1900
	MaxYearsAhead   = 1
	MaxSeats        = 100
	maxFeatureCount = 50
)

var (
	ErrEmptyName       = errors.New("vehicle name is required")
	ErrFieldTooLong    = errors.New("vehicle field exceeds maximum length")
	ErrInvalidType     = errors.New("invalid vehicle type")
	ErrInvalidSeats    = errors.New("seats must be between 1 and 100")
	ErrInvalidYear     = errors.New("invalid model year")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrPriceTooLarge   = errors.New("price exceeds 99999999.99")
	ErrMissingCategory = errors.New("category is required")
	ErrTooManyFeatures = errors.New("too many features")
)

// Params carries the editable attributes of a vehicle.
type Params struct {
	Name         string
	CategoryID   uuid.UUID
	Type         string
	Brand        string
	Model        string
	Year         int
	FuelType     string
	Transmission string
	Seats        int
	PricePerDay  money.Money
	PricePerHour money.Money
	Description  string
	Features     []string
	Mileage      string
	Color        string
	IsAvailable  bool
}

type Vehicle struct {
	id           uuid.UUID
	name         string
	categoryID   uuid.UUID
	vehicleType  Type
	brand        string
	model        string
	year         int
	fuelType     string
	transmission string
	seats        int
	pricePerDay  money.Money
	pricePerHour money.Money
	imageURL     *string
	description  string
	features     []string
	mileage      string
	color        string
	isAvailable  bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewVehicle(p Params, now time.Time) (*Vehicle, error) {
	v := &Vehicle{
		id:        uuid.New(),
		createdAt: now,
	}
	if err := v.apply(p, now); err != nil {
		return nil, err
	}
	return v, nil
}

func ReconstructVehicle(id uuid.UUID, p Params, imageURL *string, createdAt, updatedAt time.Time) *Vehicle {
	return &Vehicle{
		id:           id,
		name:         p.Name,
		categoryID:   p.CategoryID,
		vehicleType:  Type(p.Type),
		brand:        p.Brand,
		model:        p.Model,
		year:         p.Year,
		fuelType:     p.FuelType,
		transmission: p.Transmission,
		seats:        p.Seats,
		pricePerDay:  p.PricePerDay,
		pricePerHour: p.PricePerHour,
		imageURL:     imageURL,
		description:  p.Description,
		features:     NormalizeFeatures(p.Features),
		mileage:      p.Mileage,
		color:        p.Color,
		isAvailable:  p.IsAvailable,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Update replaces every editable attribute. Prices changed here never touch
// existing bookings.
func (v *Vehicle) Update(p Params, now time.Time) error {
	return v.apply(p, now)
}

func (v *Vehicle) SetAvailability(available bool, now time.Time) {
	v.isAvailable = available
	v.updatedAt = now
}

func (v *Vehicle) SetImageURL(url string, now time.Time) {
	v.imageURL = &url
	v.updatedAt = now
}

// BookingSpec is the view of this vehicle the booking factory needs.
func (v *Vehicle) BookingSpec() booking.VehicleSpec {
	return booking.VehicleSpec{
		ID: v.id,
		Rates: booking.Rates{
			PerHour: v.pricePerHour,
			PerDay:  v.pricePerDay,
		},
		IsAvailable: v.isAvailable,
	}
}

func (v *Vehicle) apply(p Params, now time.Time) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrEmptyName
	}
	if p.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}
	typ, err := NewType(p.Type)
	if err != nil {
		return err
	}
	if tooLong(name, MaxNameLength) ||
		tooLong(p.Brand, MaxBrandLength) ||
		tooLong(p.Model, MaxModelLength) ||
		tooLong(p.FuelType, MaxShortLength) ||
		tooLong(p.Transmission, MaxShortLength) ||
		tooLong(p.Mileage, MaxShortLength) ||
		tooLong(p.Color, MaxShortLength) {
		return ErrFieldTooLong
	}
	if p.Seats < 1 || p.Seats > MaxSeats {
		return ErrInvalidSeats
	}
	if p.Year < MinYear || p.Year > now.Year()+MaxYearsAhead {
		return ErrInvalidYear
	}
	if p.PricePerDay.IsNegative() || p.PricePerHour.IsNegative() {
		return ErrNegativePrice
	}
	if p.PricePerDay.Exceeds() || p.PricePerHour.Exceeds() {
		return ErrPriceTooLarge
	}
	features := NormalizeFeatures(p.Features)
	if len(features) > maxFeatureCount {
		return ErrTooManyFeatures
	}

	v.name = name
	v.categoryID = p.CategoryID
	v.vehicleType = typ
	v.brand = strings.TrimSpace(p.Brand)
	v.model = strings.TrimSpace(p.Model)
	v.year = p.Year
	v.fuelType = strings.TrimSpace(p.FuelType)
	v.transmission = strings.TrimSpace(p.Transmission)
	v.seats = p.Seats
	v.pricePerDay = p.PricePerDay
	v.pricePerHour = p.PricePerHour
	v.description = strings.TrimSpace(p.Description)
	v.features = features
	v.mileage = strings.TrimSpace(p.Mileage)
	v.color = strings.TrimSpace(p.Color)
	v.isAvailable = p.IsAvailable
	v.updatedAt = now
	return nil
}

// NormalizeFeatures trims items and drops empty ones.
func NormalizeFeatures(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParseFeatures splits the stored comma-separated list.
func ParseFeatures(csv string) []string {
	return NormalizeFeatures(strings.Split(csv, ","))
}

func JoinFeatures(features []string) string {
	return strings.Join(NormalizeFeatures(features), ",")
}

func tooLong(s string, limit int) bool {
	return len([]rune(strings.TrimSpace(s))) > limit
}

func (v *Vehicle) ID() uuid.UUID             { return v.id }
func (v *Vehicle) Name() string              { return v.name }
func (v *Vehicle) CategoryID() uuid.UUID     { return v.categoryID }
func (v *Vehicle) Type() Type                { return v.vehicleType }
func (v *Vehicle) Brand() string             { return v.brand }
func (v *Vehicle) Model() string             { return v.model }
func (v *Vehicle) Year() int                 { return v.year }
func (v *Vehicle) FuelType() string          { return v.fuelType }
func (v *Vehicle) Transmission() string      { return v.transmission }
func (v *Vehicle) Seats() int                { return v.seats }
func (v *Vehicle) PricePerDay() money.Money  { return v.pricePerDay }
func (v *Vehicle) PricePerHour() money.Money { return v.pricePerHour }
func (v *Vehicle) ImageURL() *string         { return v.imageURL }
func (v *Vehicle) Description() string       { return v.description }
func (v *Vehicle) Features() []string        { return v.features }
func (v *Vehicle) Mileage() string           { return v.mileage }
func (v *Vehicle) Color() string             { return v.color }
func (v *Vehicle) IsAvailable() bool         { return v.isAvailable }
func (v *Vehicle) CreatedAt() time.Time      { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time      { return v.updatedAt }
