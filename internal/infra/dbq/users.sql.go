package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (id, username, email, first_name, last_name, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING id`

type CreateUserParams struct {
	ID           uuid.UUID
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createUser,
		arg.ID,
		arg.Username,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateUserLastLogin = `-- name: UpdateUserLastLogin :execrows
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, updateUserLastLogin, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, username, email, first_name, last_name, password_hash, role, is_active, last_login, created_at, updated_at
FROM users
WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	row := db.QueryRow(ctx, getUserByID, id)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByLogin = `-- name: GetUserByLogin :one
SELECT id, username, email, first_name, last_name, password_hash, role, is_active, last_login, created_at, updated_at
FROM users
WHERE lower(username) = lower($1) OR lower(email) = lower($1)
ORDER BY (lower(username) = lower($1)) DESC
LIMIT 1`

// GetUserByLogin matches the identifier against username first, then email.
func (q *Queries) GetUserByLogin(ctx context.Context, db DBTX, identifier string) (Users, error) {
	row := db.QueryRow(ctx, getUserByLogin, identifier)
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertUserProfile = `-- name: UpsertUserProfile :exec
INSERT INTO user_profiles (user_id, phone, address, driving_license, id_proof, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (user_id) DO UPDATE
SET phone = EXCLUDED.phone,
    address = EXCLUDED.address,
    driving_license = EXCLUDED.driving_license,
    id_proof = EXCLUDED.id_proof,
    updated_at = EXCLUDED.updated_at`

type UpsertUserProfileParams struct {
	UserID         uuid.UUID
	Phone          string
	Address        string
	DrivingLicense string
	IDProof        string
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpsertUserProfile(ctx context.Context, db DBTX, arg UpsertUserProfileParams) error {
	_, err := db.Exec(ctx, upsertUserProfile,
		arg.UserID,
		arg.Phone,
		arg.Address,
		arg.DrivingLicense,
		arg.IDProof,
		arg.UpdatedAt,
	)
	return err
}

const getUserProfile = `-- name: GetUserProfile :one
SELECT user_id, phone, address, driving_license, id_proof, picture_url, created_at, updated_at
FROM user_profiles
WHERE user_id = $1`

func (q *Queries) GetUserProfile(ctx context.Context, db DBTX, userID uuid.UUID) (UserProfiles, error) {
	row := db.QueryRow(ctx, getUserProfile, userID)
	var i UserProfiles
	err := row.Scan(
		&i.UserID,
		&i.Phone,
		&i.Address,
		&i.DrivingLicense,
		&i.IDProof,
		&i.PictureURL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setUserProfilePicture = `-- name: SetUserProfilePicture :execrows
UPDATE user_profiles
SET picture_url = $2,
    updated_at = $3
WHERE user_id = $1`

type SetUserProfilePictureParams struct {
	UserID     uuid.UUID
	PictureURL pgtype.Text
	UpdatedAt  pgtype.Timestamptz
}

func (q *Queries) SetUserProfilePicture(ctx context.Context, db DBTX, arg SetUserProfilePictureParams) (int64, error) {
	result, err := db.Exec(ctx, setUserProfilePicture, arg.UserID, arg.PictureURL, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
