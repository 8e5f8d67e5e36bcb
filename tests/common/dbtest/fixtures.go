//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx, so fixtures can run
// inside a test transaction too.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// testPasswordHash is the bcrypt hash of "password123".
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, username, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, username, email, first_name, last_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, 'Test', 'User', $4, $5, true) ON CONFLICT DO NOTHING`,
		userID, username, username+"@example.com", testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE lower(username) = lower($1)", username).Scan(&userID)
	}

	return userID
}

func CreateTestCategory(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	categoryID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", categoryID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM categories WHERE name = $1", name).Scan(&categoryID)
	}

	return categoryID
}

// CreateTestVehicle inserts an available vehicle into the default category.
func CreateTestVehicle(t *testing.T, db DBLike, name, vehicleType string, perHourCents, perDayCents int64) uuid.UUID {
	t.Helper()

	categoryID := CreateTestCategory(t, db, "Economy")
	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(), `INSERT INTO vehicles
		(id, name, category_id, vehicle_type, brand, model, year, seats, price_per_day_cents, price_per_hour_cents, is_available)
		VALUES ($1, $2, $3, $4, 'Test', 'Model', 2023, 4, $5, $6, true)`,
		vehicleID, name, categoryID, vehicleType, perDayCents, perHourCents)
	require.NoError(t, err)

	return vehicleID
}

// referenceCategories are present in every test database; vehicles
// created by fixtures land in the first one.
var referenceCategories = [][2]string{
	{"Economy", "Affordable vehicles"},
	{"Premium", "High-end vehicles"},
}

func SeedReferenceData(db DBLike) error {
	ctx := context.Background()
	for _, c := range referenceCategories {
		if _, err := db.Exec(ctx, `INSERT INTO categories (id, name, description)
			VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`, c[0], c[1]); err != nil {
			return fmt.Errorf("seed category %s: %w", c[0], err)
		}
	}
	return nil
}

// listTables builds the TRUNCATE for every application table.
// schema_migrations is kept so the schema is not re-applied.
func listTables(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	rows, err := pool.Query(ctx, `SELECT quote_ident(tablename) FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
		ORDER BY tablename`)
	if err != nil {
		return "", err
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", nil
	}
	return "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE", nil
}

var (
	truncateOnce sync.Once
	truncateSQL  string
	truncateErr  error
)

// ResetDB empties every application table and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	truncateOnce.Do(func() { truncateSQL, truncateErr = listTables(ctx, pool) })
	if truncateErr != nil {
		return fmt.Errorf("list tables: %w", truncateErr)
	}
	if truncateSQL != "" {
		if _, err := pool.Exec(ctx, truncateSQL); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}
	return SeedReferenceData(pool)
}
