//go:build unit

package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		explicit []RepositoryErrorKind
		want     RepositoryErrorKind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "booking range check", err: &pgconn.PgError{Code: "23514", ConstraintName: "bookings_range_check"}, want: KindCheckViolated},
		{name: "serialization failure", err: fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), want: KindConflict},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: KindDBFailure},
		{name: "explicit kind wins", err: pgx.ErrNoRows, explicit: []RepositoryErrorKind{KindNotFound}, want: KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("save booking", tt.err, tt.explicit...)

			assert.True(t, IsKind(err, tt.want))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "save booking")
		})
	}
}

func TestConstraintNameSurvivesWrapping(t *testing.T) {
	err := WrapRepoErr("insert review", &pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_vehicle_key"})

	assert.Equal(t, "reviews_user_vehicle_key", ConstraintName(fmt.Errorf("create review: %w", err)))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}
