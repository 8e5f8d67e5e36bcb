package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createReview = `-- name: CreateReview :one
INSERT INTO reviews (id, user_id, vehicle_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING id`

type CreateReviewParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VehicleID uuid.UUID
	Rating    int32
	Comment   string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateReview(ctx context.Context, db DBTX, arg CreateReviewParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReview,
		arg.ID,
		arg.UserID,
		arg.VehicleID,
		arg.Rating,
		arg.Comment,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateReview = `-- name: UpdateReview :execrows
UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`

type UpdateReviewParams struct {
	ID        uuid.UUID
	Rating    int32
	Comment   string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateReview(ctx context.Context, db DBTX, arg UpdateReviewParams) (int64, error) {
	result, err := db.Exec(ctx, updateReview, arg.ID, arg.Rating, arg.Comment, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteReview = `-- name: DeleteReview :execrows
DELETE FROM reviews WHERE id = $1`

func (q *Queries) DeleteReview(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteReview, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReviewForUpdate = `-- name: GetReviewForUpdate :one
SELECT id, user_id, vehicle_id, rating, comment, created_at, updated_at
FROM reviews
WHERE id = $1
FOR UPDATE`

func (q *Queries) GetReviewForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reviews, error) {
	row := db.QueryRow(ctx, getReviewForUpdate, id)
	var i Reviews
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.VehicleID,
		&i.Rating,
		&i.Comment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const reviewViewSelect = `
SELECT r.id, r.user_id, u.username, r.vehicle_id, v.name, r.rating, r.comment, r.created_at, r.updated_at
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN vehicles v ON v.id = r.vehicle_id`

type ReviewViewRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Username    string
	VehicleID   uuid.UUID
	VehicleName string
	Rating      int32
	Comment     string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func scanReviewView(row pgx.Row, i *ReviewViewRow) error {
	return row.Scan(
		&i.ID,
		&i.UserID,
		&i.Username,
		&i.VehicleID,
		&i.VehicleName,
		&i.Rating,
		&i.Comment,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}

func collectReviewRows(rows pgx.Rows, err error) ([]ReviewViewRow, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ReviewViewRow{}
	for rows.Next() {
		var i ReviewViewRow
		if err := scanReviewView(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getReviewViewByID = `-- name: GetReviewViewByID :one` + reviewViewSelect + `
WHERE r.id = $1`

func (q *Queries) GetReviewViewByID(ctx context.Context, db DBTX, id uuid.UUID) (ReviewViewRow, error) {
	row := db.QueryRow(ctx, getReviewViewByID, id)
	var i ReviewViewRow
	err := scanReviewView(row, &i)
	return i, err
}

const listReviewsByVehicleFirstPage = `-- name: ListReviewsByVehicleFirstPage :many` + reviewViewSelect + `
WHERE r.vehicle_id = $1
  AND ($3::int IS NULL OR r.rating >= $3)
  AND ($4::int IS NULL OR r.rating <= $4)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

type ListReviewsByVehicleFirstPageParams struct {
	VehicleID uuid.UUID
	Limit     int32
	MinRating pgtype.Int4
	MaxRating pgtype.Int4
}

func (q *Queries) ListReviewsByVehicleFirstPage(ctx context.Context, db DBTX, arg ListReviewsByVehicleFirstPageParams) ([]ReviewViewRow, error) {
	return collectReviewRows(db.Query(ctx, listReviewsByVehicleFirstPage,
		arg.VehicleID,
		arg.Limit,
		arg.MinRating,
		arg.MaxRating,
	))
}

const listReviewsByVehicleKeyset = `-- name: ListReviewsByVehicleKeyset :many` + reviewViewSelect + `
WHERE r.vehicle_id = $1
  AND (r.created_at, r.id) < ($2::timestamptz, $3::uuid)
  AND ($5::int IS NULL OR r.rating >= $5)
  AND ($6::int IS NULL OR r.rating <= $6)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $4`

type ListReviewsByVehicleKeysetParams struct {
	VehicleID uuid.UUID
	CreatedAt pgtype.Timestamptz
	ID        uuid.UUID
	Limit     int32
	MinRating pgtype.Int4
	MaxRating pgtype.Int4
}

func (q *Queries) ListReviewsByVehicleKeyset(ctx context.Context, db DBTX, arg ListReviewsByVehicleKeysetParams) ([]ReviewViewRow, error) {
	return collectReviewRows(db.Query(ctx, listReviewsByVehicleKeyset,
		arg.VehicleID,
		arg.CreatedAt,
		arg.ID,
		arg.Limit,
		arg.MinRating,
		arg.MaxRating,
	))
}

const listReviewsByUser = `-- name: ListReviewsByUser :many` + reviewViewSelect + `
WHERE r.user_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

type ListReviewsByUserParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListReviewsByUser(ctx context.Context, db DBTX, arg ListReviewsByUserParams) ([]ReviewViewRow, error) {
	return collectReviewRows(db.Query(ctx, listReviewsByUser, arg.UserID, arg.Limit))
}

const recalcVehicleRatingStats = `-- name: RecalcVehicleRatingStats :exec
INSERT INTO vehicle_rating_stats (
    vehicle_id, total_reviews, average_rating,
    rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count, updated_at
)
SELECT $1::uuid,
    count(*)::int,
    coalesce(round(avg(rating)::numeric, 2), 0),
    (count(*) FILTER (WHERE rating = 1))::int,
    (count(*) FILTER (WHERE rating = 2))::int,
    (count(*) FILTER (WHERE rating = 3))::int,
    (count(*) FILTER (WHERE rating = 4))::int,
    (count(*) FILTER (WHERE rating = 5))::int,
    now()
FROM reviews
WHERE vehicle_id = $1
ON CONFLICT (vehicle_id) DO UPDATE SET
    total_reviews  = EXCLUDED.total_reviews,
    average_rating = EXCLUDED.average_rating,
    rating_1_count = EXCLUDED.rating_1_count,
    rating_2_count = EXCLUDED.rating_2_count,
    rating_3_count = EXCLUDED.rating_3_count,
    rating_4_count = EXCLUDED.rating_4_count,
    rating_5_count = EXCLUDED.rating_5_count,
    updated_at     = EXCLUDED.updated_at`

func (q *Queries) RecalcVehicleRatingStats(ctx context.Context, db DBTX, vehicleID uuid.UUID) error {
	_, err := db.Exec(ctx, recalcVehicleRatingStats, vehicleID)
	return err
}

const getVehicleRatingStats = `-- name: GetVehicleRatingStats :one
SELECT vehicle_id, total_reviews, average_rating,
    rating_1_count, rating_2_count, rating_3_count, rating_4_count, rating_5_count, updated_at
FROM vehicle_rating_stats
WHERE vehicle_id = $1`

func (q *Queries) GetVehicleRatingStats(ctx context.Context, db DBTX, vehicleID uuid.UUID) (VehicleRatingStats, error) {
	row := db.QueryRow(ctx, getVehicleRatingStats, vehicleID)
	var i VehicleRatingStats
	err := row.Scan(
		&i.VehicleID,
		&i.TotalReviews,
		&i.AverageRating,
		&i.Rating1Count,
		&i.Rating2Count,
		&i.Rating3Count,
		&i.Rating4Count,
		&i.Rating5Count,
		&i.UpdatedAt,
	)
	return i, err
}

const getReviewViewByUserAndVehicle = `-- name: GetReviewViewByUserAndVehicle :one` + reviewViewSelect + `
WHERE r.user_id = $1 AND r.vehicle_id = $2`

type GetReviewViewByUserAndVehicleParams struct {
	UserID    uuid.UUID
	VehicleID uuid.UUID
}

func (q *Queries) GetReviewViewByUserAndVehicle(ctx context.Context, db DBTX, arg GetReviewViewByUserAndVehicleParams) (ReviewViewRow, error) {
	row := db.QueryRow(ctx, getReviewViewByUserAndVehicle, arg.UserID, arg.VehicleID)
	var i ReviewViewRow
	err := scanReviewView(row, &i)
	return i, err
}
