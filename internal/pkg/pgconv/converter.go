// Package pgconv converts between sqlc's pgtype values and the plain Go
// types the domain and read models use.
package pgconv

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// IsNoRows covers both pgx and database/sql style empty results.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func ptrIf[T any](valid bool, v T) *T {
	if !valid {
		return nil
	}
	return &v
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return UUIDToPgtype(*id)
}

func UUIDPtrFromPgtype(v pgtype.UUID) *uuid.UUID {
	return ptrIf(v.Valid, uuid.UUID(v.Bytes))
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return StringToPgtype(*s)
}

func StringPtrFromPgtype(v pgtype.Text) *string {
	return ptrIf(v.Valid, v.String)
}

// TimeToPgtype stores booking and audit timestamps as UTC.
func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func TimeFromPgtype(v pgtype.Timestamptz) time.Time {
	return v.Time
}

func TimePtrFromPgtype(v pgtype.Timestamptz) *time.Time {
	return ptrIf(v.Valid, v.Time)
}

// Int4PtrToPgtype saturates at the int32 bounds rather than wrapping.
func Int4PtrToPgtype(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(min(max(*v, math.MinInt32), math.MaxInt32)), Valid: true}
}

func Int8PtrToPgtype(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
