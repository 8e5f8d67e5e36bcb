package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const vehicleColumns = `v.id, v.name, v.category_id, v.vehicle_type, v.brand, v.model, v.year, v.fuel_type, v.transmission,
    v.seats, v.price_per_day_cents, v.price_per_hour_cents, v.image_url, v.description, v.features,
    v.is_available, v.mileage, v.color, v.created_at, v.updated_at`

type VehicleWithCategoryRow struct {
	Vehicles
	CategoryName string
}

func scanVehicle(row pgx.Row, i *Vehicles, extra ...any) error {
	dest := []any{
		&i.ID,
		&i.Name,
		&i.CategoryID,
		&i.VehicleType,
		&i.Brand,
		&i.Model,
		&i.Year,
		&i.FuelType,
		&i.Transmission,
		&i.Seats,
		&i.PricePerDayCents,
		&i.PricePerHourCents,
		&i.ImageURL,
		&i.Description,
		&i.Features,
		&i.IsAvailable,
		&i.Mileage,
		&i.Color,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func collectVehicleRows(rows pgx.Rows, err error) ([]VehicleWithCategoryRow, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []VehicleWithCategoryRow{}
	for rows.Next() {
		var i VehicleWithCategoryRow
		if err := scanVehicle(rows, &i.Vehicles, &i.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createVehicle = `-- name: CreateVehicle :one
INSERT INTO vehicles (
    id, name, category_id, vehicle_type, brand, model, year, fuel_type, transmission, seats,
    price_per_day_cents, price_per_hour_cents, image_url, description, features, is_available,
    mileage, color, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)
RETURNING id`

type CreateVehicleParams struct {
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
}

func (q *Queries) CreateVehicle(ctx context.Context, db DBTX, arg CreateVehicleParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createVehicle,
		arg.ID,
		arg.Name,
		arg.CategoryID,
		arg.VehicleType,
		arg.Brand,
		arg.Model,
		arg.Year,
		arg.FuelType,
		arg.Transmission,
		arg.Seats,
		arg.PricePerDayCents,
		arg.PricePerHourCents,
		arg.ImageURL,
		arg.Description,
		arg.Features,
		arg.IsAvailable,
		arg.Mileage,
		arg.Color,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateVehicle = `-- name: UpdateVehicle :execrows
UPDATE vehicles
SET name = $2, category_id = $3, vehicle_type = $4, brand = $5, model = $6, year = $7,
    fuel_type = $8, transmission = $9, seats = $10, price_per_day_cents = $11,
    price_per_hour_cents = $12, description = $13, features = $14, is_available = $15,
    mileage = $16, color = $17, updated_at = $18
WHERE id = $1`

type UpdateVehicleParams struct {
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
	Description       string
	Features          string
	IsAvailable       bool
	Mileage           string
	Color             string
	UpdatedAt         pgtype.Timestamptz
}

func (q *Queries) UpdateVehicle(ctx context.Context, db DBTX, arg UpdateVehicleParams) (int64, error) {
	result, err := db.Exec(ctx, updateVehicle,
		arg.ID,
		arg.Name,
		arg.CategoryID,
		arg.VehicleType,
		arg.Brand,
		arg.Model,
		arg.Year,
		arg.FuelType,
		arg.Transmission,
		arg.Seats,
		arg.PricePerDayCents,
		arg.PricePerHourCents,
		arg.Description,
		arg.Features,
		arg.IsAvailable,
		arg.Mileage,
		arg.Color,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const setVehicleAvailability = `-- name: SetVehicleAvailability :execrows
UPDATE vehicles SET is_available = $2, updated_at = $3 WHERE id = $1`

type SetVehicleAvailabilityParams struct {
	ID          uuid.UUID
	IsAvailable bool
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) SetVehicleAvailability(ctx context.Context, db DBTX, arg SetVehicleAvailabilityParams) (int64, error) {
	result, err := db.Exec(ctx, setVehicleAvailability, arg.ID, arg.IsAvailable, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const setVehicleImage = `-- name: SetVehicleImage :execrows
UPDATE vehicles SET image_url = $2, updated_at = $3 WHERE id = $1`

type SetVehicleImageParams struct {
	ID        uuid.UUID
	ImageURL  pgtype.Text
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) SetVehicleImage(ctx context.Context, db DBTX, arg SetVehicleImageParams) (int64, error) {
	result, err := db.Exec(ctx, setVehicleImage, arg.ID, arg.ImageURL, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getVehicleByID = `-- name: GetVehicleByID :one
SELECT ` + vehicleColumns + `, c.name AS category_name
FROM vehicles v
JOIN categories c ON c.id = v.category_id
WHERE v.id = $1`

func (q *Queries) GetVehicleByID(ctx context.Context, db DBTX, id uuid.UUID) (VehicleWithCategoryRow, error) {
	row := db.QueryRow(ctx, getVehicleByID, id)
	var i VehicleWithCategoryRow
	err := scanVehicle(row, &i.Vehicles, &i.CategoryName)
	return i, err
}

const getVehicleForUpdate = `-- name: GetVehicleForUpdate :one
SELECT ` + vehicleColumns + `
FROM vehicles v
WHERE v.id = $1
FOR UPDATE`

// GetVehicleForUpdate row-locks the vehicle until the surrounding transaction ends.
func (q *Queries) GetVehicleForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Vehicles, error) {
	row := db.QueryRow(ctx, getVehicleForUpdate, id)
	var i Vehicles
	err := scanVehicle(row, &i)
	return i, err
}

const getVehicle = `-- name: GetVehicle :one
SELECT ` + vehicleColumns + `
FROM vehicles v
WHERE v.id = $1`

func (q *Queries) GetVehicle(ctx context.Context, db DBTX, id uuid.UUID) (Vehicles, error) {
	row := db.QueryRow(ctx, getVehicle, id)
	var i Vehicles
	err := scanVehicle(row, &i)
	return i, err
}

const vehicleFilter = `
WHERE v.is_available
  AND ($1::text IS NULL OR v.vehicle_type = $1)
  AND ($2::text IS NULL OR v.brand ILIKE '%' || $2 || '%')
  AND ($3::bigint IS NULL OR v.price_per_day_cents >= $3)
  AND ($4::bigint IS NULL OR v.price_per_day_cents <= $4)
  AND ($5::int IS NULL OR v.seats >= $5)
  AND ($6::uuid IS NULL OR v.category_id = $6)`

type VehicleFilterParams struct {
	VehicleType   pgtype.Text
	BrandPattern  pgtype.Text
	MinPriceCents pgtype.Int8
	MaxPriceCents pgtype.Int8
	MinSeats      pgtype.Int4
	CategoryID    pgtype.UUID
}

func (f VehicleFilterParams) args() []any {
	return []any{f.VehicleType, f.BrandPattern, f.MinPriceCents, f.MaxPriceCents, f.MinSeats, f.CategoryID}
}

const listAvailableVehicles = `-- name: ListAvailableVehicles :many
SELECT ` + vehicleColumns + `, c.name AS category_name
FROM vehicles v
JOIN categories c ON c.id = v.category_id` + vehicleFilter + `
ORDER BY v.created_at DESC, v.id DESC
LIMIT $7 OFFSET $8`

type ListAvailableVehiclesParams struct {
	VehicleFilterParams
	Limit  int32
	Offset int32
}

func (q *Queries) ListAvailableVehicles(ctx context.Context, db DBTX, arg ListAvailableVehiclesParams) ([]VehicleWithCategoryRow, error) {
	args := append(arg.args(), arg.Limit, arg.Offset)
	return collectVehicleRows(db.Query(ctx, listAvailableVehicles, args...))
}

const countAvailableVehicles = `-- name: CountAvailableVehicles :one
SELECT count(*) FROM vehicles v` + vehicleFilter

func (q *Queries) CountAvailableVehicles(ctx context.Context, db DBTX, arg VehicleFilterParams) (int64, error) {
	row := db.QueryRow(ctx, countAvailableVehicles, arg.args()...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listFeaturedVehicles = `-- name: ListFeaturedVehicles :many
SELECT ` + vehicleColumns + `, c.name AS category_name
FROM vehicles v
JOIN categories c ON c.id = v.category_id
WHERE v.is_available
ORDER BY v.created_at DESC, v.id DESC
LIMIT $1`

func (q *Queries) ListFeaturedVehicles(ctx context.Context, db DBTX, limit int32) ([]VehicleWithCategoryRow, error) {
	return collectVehicleRows(db.Query(ctx, listFeaturedVehicles, limit))
}

const listSimilarVehicles = `-- name: ListSimilarVehicles :many
SELECT ` + vehicleColumns + `, c.name AS category_name
FROM vehicles v
JOIN categories c ON c.id = v.category_id
WHERE v.is_available AND v.vehicle_type = $1 AND v.id <> $2
ORDER BY v.created_at DESC, v.id DESC
LIMIT $3`

type ListSimilarVehiclesParams struct {
	VehicleType string
	ExcludeID   uuid.UUID
	Limit       int32
}

func (q *Queries) ListSimilarVehicles(ctx context.Context, db DBTX, arg ListSimilarVehiclesParams) ([]VehicleWithCategoryRow, error) {
	return collectVehicleRows(db.Query(ctx, listSimilarVehicles, arg.VehicleType, arg.ExcludeID, arg.Limit))
}

const countAvailableVehiclesByType = `-- name: CountAvailableVehiclesByType :many
SELECT vehicle_type, count(*) FROM vehicles WHERE is_available GROUP BY vehicle_type`

type CountAvailableVehiclesByTypeRow struct {
	VehicleType string
	Count       int64
}

func (q *Queries) CountAvailableVehiclesByType(ctx context.Context, db DBTX) ([]CountAvailableVehiclesByTypeRow, error) {
	rows, err := db.Query(ctx, countAvailableVehiclesByType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CountAvailableVehiclesByTypeRow{}
	for rows.Next() {
		var i CountAvailableVehiclesByTypeRow
		if err := rows.Scan(&i.VehicleType, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const vehicleNameExists = `-- name: VehicleNameExists :one
SELECT EXISTS (SELECT 1 FROM vehicles WHERE name = $1)`

func (q *Queries) VehicleNameExists(ctx context.Context, db DBTX, name string) (bool, error) {
	row := db.QueryRow(ctx, vehicleNameExists, name)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
