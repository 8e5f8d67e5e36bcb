package request

import (
	"strings"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/patch"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

// Prices are decimal strings with at most two fractional digits.
type VehicleRequest struct {
	Name         string    `json:"name" binding:"required,max=200"`
	CategoryID   uuid.UUID `json:"category_id" binding:"required"`
	VehicleType  string    `json:"vehicle_type" binding:"required,oneof=bike car traveller"`
	Brand        string    `json:"brand" binding:"required,max=100"`
	Model        string    `json:"model" binding:"required,max=100"`
	Year         int       `json:"year" binding:"required"`
	FuelType     string    `json:"fuel_type" binding:"max=50"`
	Transmission string    `json:"transmission" binding:"max=50"`
	Seats        int       `json:"seats" binding:"required,min=1"`
	PricePerDay  string    `json:"price_per_day" binding:"required"`
	PricePerHour string    `json:"price_per_hour" binding:"required"`
	Description  string    `json:"description"`
	Features     string    `json:"features"`
	Mileage      string    `json:"mileage" binding:"max=50"`
	Color        string    `json:"color" binding:"max=50"`
	IsAvailable  *bool     `json:"is_available"`
}

func (r *VehicleRequest) ToInput() commands.VehicleInput {
	return commands.VehicleInput{
		Name:         r.Name,
		CategoryID:   r.CategoryID,
		Type:         r.VehicleType,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		FuelType:     r.FuelType,
		Transmission: r.Transmission,
		Seats:        r.Seats,
		PricePerDay:  r.PricePerDay,
		PricePerHour: r.PricePerHour,
		Description:  r.Description,
		Features:     vehicle.ParseFeatures(r.Features),
		Mileage:      r.Mileage,
		Color:        r.Color,
		IsAvailable:  patch.Value(r.IsAvailable, true),
	}
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// VehicleListQuery carries the catalog filters from the query string.
type VehicleListQuery struct {
	Type     string `form:"type"`
	Brand    string `form:"brand"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Seats    *int   `form:"seats"`
	Page     string `form:"page"`
}

var errInvalidPrice = errs.New("price filter must be a non-negative amount")

func (q *VehicleListQuery) ToFilter() (queries.VehicleFilter, error) {
	var f queries.VehicleFilter
	if t := strings.TrimSpace(q.Type); t != "" {
		f.Type = &t
	}
	if b := strings.TrimSpace(q.Brand); b != "" {
		f.Brand = &b
	}
	var err error
	if f.MinPriceCents, err = parsePrice(q.MinPrice); err != nil {
		return f, err
	}
	if f.MaxPriceCents, err = parsePrice(q.MaxPrice); err != nil {
		return f, err
	}
	f.MinSeats = q.Seats
	return f, nil
}

func parsePrice(raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	m, err := money.Parse(raw)
	if err != nil || m.Cents() < 0 {
		return nil, errInvalidPrice
	}
	cents := m.Cents()
	return &cents, nil
}
