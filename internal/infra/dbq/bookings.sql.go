package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createBooking = `-- name: CreateBooking :one
INSERT INTO bookings (
    id, user_id, vehicle_id, start_date, end_date, pickup_location, return_location,
    total_amount_cents, status, payment_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING id`

type CreateBookingParams struct {
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
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createBooking,
		arg.ID,
		arg.UserID,
		arg.VehicleID,
		arg.StartDate,
		arg.EndDate,
		arg.PickupLocation,
		arg.ReturnLocation,
		arg.TotalAmountCents,
		arg.Status,
		arg.PaymentStatus,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateBookingState = `-- name: UpdateBookingState :execrows
UPDATE bookings SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`

type UpdateBookingStateParams struct {
	ID            uuid.UUID
	Status        string
	PaymentStatus string
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateBookingState(ctx context.Context, db DBTX, arg UpdateBookingStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingState, arg.ID, arg.Status, arg.PaymentStatus, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBookingForUpdate = `-- name: GetBookingForUpdate :one
SELECT id, user_id, vehicle_id, start_date, end_date, pickup_location, return_location,
    total_amount_cents, status, payment_status, created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	row := db.QueryRow(ctx, getBookingForUpdate, id)
	var i Bookings
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.VehicleID,
		&i.StartDate,
		&i.EndDate,
		&i.PickupLocation,
		&i.ReturnLocation,
		&i.TotalAmountCents,
		&i.Status,
		&i.PaymentStatus,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countOverlappingBookings = `-- name: CountOverlappingBookings :one
SELECT count(*)
FROM bookings
WHERE vehicle_id = $1
  AND status <> 'cancelled'
  AND start_date < $3
  AND end_date > $2`

type CountOverlappingBookingsParams struct {
	VehicleID uuid.UUID
	StartDate pgtype.Timestamptz
	EndDate   pgtype.Timestamptz
}

func (q *Queries) CountOverlappingBookings(ctx context.Context, db DBTX, arg CountOverlappingBookingsParams) (int64, error) {
	row := db.QueryRow(ctx, countOverlappingBookings, arg.VehicleID, arg.StartDate, arg.EndDate)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const bookingViewSelect = `
SELECT b.id, b.user_id, b.vehicle_id, b.start_date, b.end_date, b.pickup_location, b.return_location,
    b.total_amount_cents, b.status, b.payment_status, b.created_at, b.updated_at,
    u.username, u.email, v.name, v.vehicle_type, v.brand, v.model, v.image_url
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN vehicles v ON v.id = b.vehicle_id`

type BookingViewRow struct {
	Bookings
	Username     string
	UserEmail    string
	VehicleName  string
	VehicleType  string
	VehicleBrand string
	VehicleModel string
	VehicleImage pgtype.Text
}

func scanBookingView(row pgx.Row, i *BookingViewRow) error {
	return row.Scan(
		&i.ID,
		&i.UserID,
		&i.VehicleID,
		&i.StartDate,
		&i.EndDate,
		&i.PickupLocation,
		&i.ReturnLocation,
		&i.TotalAmountCents,
		&i.Status,
		&i.PaymentStatus,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Username,
		&i.UserEmail,
		&i.VehicleName,
		&i.VehicleType,
		&i.VehicleBrand,
		&i.VehicleModel,
		&i.VehicleImage,
	)
}

const getBookingViewByID = `-- name: GetBookingViewByID :one` + bookingViewSelect + `
WHERE b.id = $1`

func (q *Queries) GetBookingViewByID(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	row := db.QueryRow(ctx, getBookingViewByID, id)
	var i BookingViewRow
	err := scanBookingView(row, &i)
	return i, err
}

const listBookingsByUser = `-- name: ListBookingsByUser :many` + bookingViewSelect + `
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2 OFFSET $3`

type ListBookingsByUserParams struct {
	UserID uuid.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListBookingsByUser(ctx context.Context, db DBTX, arg ListBookingsByUserParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookingsByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BookingViewRow{}
	for rows.Next() {
		var i BookingViewRow
		if err := scanBookingView(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countBookingsByUser = `-- name: CountBookingsByUser :one
SELECT count(*),
    count(*) FILTER (WHERE status = 'pending'),
    count(*) FILTER (WHERE status = 'confirmed'),
    count(*) FILTER (WHERE status = 'active'),
    count(*) FILTER (WHERE status = 'completed'),
    count(*) FILTER (WHERE status = 'cancelled')
FROM bookings
WHERE user_id = $1`

type CountBookingsByUserRow struct {
	Total     int64
	Pending   int64
	Confirmed int64
	Active    int64
	Completed int64
	Cancelled int64
}

func (q *Queries) CountBookingsByUser(ctx context.Context, db DBTX, userID uuid.UUID) (CountBookingsByUserRow, error) {
	row := db.QueryRow(ctx, countBookingsByUser, userID)
	var i CountBookingsByUserRow
	err := row.Scan(&i.Total, &i.Pending, &i.Confirmed, &i.Active, &i.Completed, &i.Cancelled)
	return i, err
}
