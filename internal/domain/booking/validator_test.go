//go:build unit

package booking_test

import (
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{
			name:  "one day ahead for three hours",
			start: now.Add(24 * time.Hour),
			end:   now.Add(27 * time.Hour),
		},
		{
			name:  "exactly one hour is accepted",
			start: now.Add(time.Hour),
			end:   now.Add(2 * time.Hour),
		},
		{
			name:  "start one nanosecond after now",
			start: now.Add(time.Nanosecond),
			end:   now.Add(time.Hour + time.Nanosecond),
		},
		{
			name:  "start equal to now",
			start: now,
			end:   now.Add(2 * time.Hour),
			errIs: booking.ErrPastStart,
		},
		{
			name:  "start in the past",
			start: now.Add(-time.Hour),
			end:   now.Add(5 * time.Hour),
			errIs: booking.ErrPastStart,
		},
		{
			name:  "end equal to start",
			start: now.Add(time.Hour),
			end:   now.Add(time.Hour),
			errIs: booking.ErrInvalidRange,
		},
		{
			name:  "end before start",
			start: now.Add(3 * time.Hour),
			end:   now.Add(2 * time.Hour),
			errIs: booking.ErrInvalidRange,
		},
		{
			name:  "thirty minutes is too short",
			start: now.Add(24 * time.Hour),
			end:   now.Add(24*time.Hour + 30*time.Minute),
			errIs: booking.ErrTooShort,
		},
		{
			name:  "one second under an hour",
			start: now.Add(time.Hour),
			end:   now.Add(2*time.Hour - time.Second),
			errIs: booking.ErrTooShort,
		},
		{
			name:  "past start wins over inverted range",
			start: now.Add(-2 * time.Hour),
			end:   now.Add(-3 * time.Hour),
			errIs: booking.ErrPastStart,
		},
		{
			name:  "inverted range wins over too short",
			start: now.Add(2 * time.Hour),
			end:   now.Add(2*time.Hour - time.Minute),
			errIs: booking.ErrInvalidRange,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := booking.Validate(c.start, c.end, now)
			if c.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, c.errIs)
		})
	}
}

func TestValidate_ZoneIndependent(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	// 14:31 IST is 09:01 UTC
	start := time.Date(2026, 3, 10, 14, 31, 0, 0, kolkata)

	require.NoError(t, booking.Validate(start, start.Add(time.Hour), now))
	require.ErrorIs(t, booking.Validate(start.Add(-2*time.Minute), start.Add(time.Hour), now), booking.ErrPastStart)
}
