//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	Now    time.Time
	Params vehicle.Params
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		Now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		Params: vehicle.Params{
			Name:         "Honda Activa 6G",
			CategoryID:   uuid.New(),
			Type:         "bike",
			Brand:        "Honda",
			Model:        "Activa 6G",
			Year:         2023,
			FuelType:     "Petrol",
			Transmission: "Automatic",
			Seats:        2,
			PricePerDay:  money.FromCents(50000),
			PricePerHour: money.FromCents(5000),
			Description:  "Reliable city scooter",
			Features:     []string{"Digital Console", " LED Headlamp ", ""},
			Mileage:      "50 km/l",
			Color:        "Pearl White",
			IsAvailable:  true,
		},
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

// Build methods
func (v *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(v.Params, v.Now)
}

// Fluent builder methods
func (v *VehicleBuilder) WithName(name string) *VehicleBuilder {
	v.Params.Name = name
	return v
}

func (v *VehicleBuilder) WithType(t string) *VehicleBuilder {
	v.Params.Type = t
	return v
}

func (v *VehicleBuilder) WithCategoryID(id uuid.UUID) *VehicleBuilder {
	v.Params.CategoryID = id
	return v
}

func (v *VehicleBuilder) WithPrices(perHourCents, perDayCents int64) *VehicleBuilder {
	v.Params.PricePerHour = money.FromCents(perHourCents)
	v.Params.PricePerDay = money.FromCents(perDayCents)
	return v
}

func (v *VehicleBuilder) AsUnavailable() *VehicleBuilder {
	v.Params.IsAvailable = false
	return v
}
