package converter

import (
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
)

func VehicleToCreateParams(v *vehicle.Vehicle) dbq.CreateVehicleParams {
	return dbq.CreateVehicleParams{
		ID:                v.ID(),
		Name:              v.Name(),
		CategoryID:        v.CategoryID(),
		VehicleType:       v.Type().String(),
		Brand:             v.Brand(),
		Model:             v.Model(),
		Year:              int32(v.Year()),
		FuelType:          v.FuelType(),
		Transmission:      v.Transmission(),
		Seats:             int32(v.Seats()),
		PricePerDayCents:  v.PricePerDay().Cents(),
		PricePerHourCents: v.PricePerHour().Cents(),
		ImageURL:          pgconv.StringPtrToPgtype(v.ImageURL()),
		Description:       v.Description(),
		Features:          vehicle.JoinFeatures(v.Features()),
		IsAvailable:       v.IsAvailable(),
		Mileage:           v.Mileage(),
		Color:             v.Color(),
		CreatedAt:         pgconv.TimeToPgtype(v.CreatedAt()),
	}
}

func VehicleToUpdateParams(v *vehicle.Vehicle) dbq.UpdateVehicleParams {
	return dbq.UpdateVehicleParams{
		ID:                v.ID(),
		Name:              v.Name(),
		CategoryID:        v.CategoryID(),
		VehicleType:       v.Type().String(),
		Brand:             v.Brand(),
		Model:             v.Model(),
		Year:              int32(v.Year()),
		FuelType:          v.FuelType(),
		Transmission:      v.Transmission(),
		Seats:             int32(v.Seats()),
		PricePerDayCents:  v.PricePerDay().Cents(),
		PricePerHourCents: v.PricePerHour().Cents(),
		Description:       v.Description(),
		Features:          vehicle.JoinFeatures(v.Features()),
		IsAvailable:       v.IsAvailable(),
		Mileage:           v.Mileage(),
		Color:             v.Color(),
		UpdatedAt:         pgconv.TimeToPgtype(v.UpdatedAt()),
	}
}

func VehicleFromRow(row dbq.Vehicles) *vehicle.Vehicle {
	p := vehicle.Params{
		Name:         row.Name,
		CategoryID:   row.CategoryID,
		Type:         row.VehicleType,
		Brand:        row.Brand,
		Model:        row.Model,
		Year:         int(row.Year),
		FuelType:     row.FuelType,
		Transmission: row.Transmission,
		Seats:        int(row.Seats),
		PricePerDay:  money.FromCents(row.PricePerDayCents),
		PricePerHour: money.FromCents(row.PricePerHourCents),
		Description:  row.Description,
		Features:     vehicle.ParseFeatures(row.Features),
		Mileage:      row.Mileage,
		Color:        row.Color,
		IsAvailable:  row.IsAvailable,
	}
	return vehicle.ReconstructVehicle(
		row.ID,
		p,
		pgconv.StringPtrFromPgtype(row.ImageURL),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
