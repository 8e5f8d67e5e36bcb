//go:build unit

package booking_test

import (
	"testing"

	"vehicle-rental/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []booking.Status{
		booking.StatusPending,
		booking.StatusConfirmed,
		booking.StatusActive,
		booking.StatusCompleted,
		booking.StatusCancelled,
	}
	allowed := map[[2]booking.Status]bool{
		{booking.StatusPending, booking.StatusConfirmed}:   true,
		{booking.StatusPending, booking.StatusCancelled}:   true,
		{booking.StatusConfirmed, booking.StatusCancelled}: true,
		{booking.StatusConfirmed, booking.StatusActive}:    true,
		{booking.StatusActive, booking.StatusCompleted}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]booking.Status{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsCancellable(t *testing.T) {
	assert.True(t, booking.StatusPending.IsCancellable())
	assert.True(t, booking.StatusConfirmed.IsCancellable())
	assert.False(t, booking.StatusActive.IsCancellable())
	assert.False(t, booking.StatusCompleted.IsCancellable())
	assert.False(t, booking.StatusCancelled.IsCancellable())
}

func TestNewStatus(t *testing.T) {
	s, err := booking.NewStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, s)

	_, err = booking.NewStatus("canceled")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, err = booking.NewPaymentStatus("refunded")
	require.ErrorIs(t, err, booking.ErrInvalidPaymentStatus)
}
