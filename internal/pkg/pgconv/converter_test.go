//go:build unit

package pgconv

import (
	"database/sql"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("find booking: %w", sql.ErrNoRows)))
	assert.False(t, IsNoRows(assert.AnError))
}

func TestNullableConversions(t *testing.T) {
	assert.Nil(t, UUIDPtrFromPgtype(pgtype.UUID{}))
	id := uuid.New()
	assert.Equal(t, id, *UUIDPtrFromPgtype(UUIDPtrToPgtype(&id)))

	assert.Nil(t, StringPtrFromPgtype(StringPtrToPgtype(nil)))
	s := "MG Road"
	assert.Equal(t, "MG Road", *StringPtrFromPgtype(StringPtrToPgtype(&s)))

	assert.Nil(t, TimePtrFromPgtype(pgtype.Timestamptz{}))
	assert.False(t, Int8PtrToPgtype(nil).Valid)
}

func TestTimeToPgtypeUsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	got := TimeToPgtype(time.Date(2026, 5, 1, 10, 0, 0, 0, ist))

	assert.Equal(t, time.UTC, got.Time.Location())
	assert.Equal(t, 4, got.Time.Hour())
	assert.Equal(t, 30, got.Time.Minute())
}

func TestInt4PtrToPgtypeSaturates(t *testing.T) {
	big, small, five := math.MaxInt32+10, math.MinInt32-10, 5

	assert.Equal(t, int32(math.MaxInt32), Int4PtrToPgtype(&big).Int32)
	assert.Equal(t, int32(math.MinInt32), Int4PtrToPgtype(&small).Int32)
	assert.Equal(t, pgtype.Int4{Int32: 5, Valid: true}, Int4PtrToPgtype(&five))
	assert.False(t, Int4PtrToPgtype(nil).Valid)
}
