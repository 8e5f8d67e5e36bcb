//go:build unit

package booking_test

import (
	"testing"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalAmount(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	hourly := money.FromCents(10000)
	daily := money.FromCents(150000)

	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "one hour", duration: time.Hour, want: "100.00"},
		{name: "ninety minutes", duration: 90 * time.Minute, want: "150.00"},
		{name: "exactly 24 hours bills hourly", duration: 24 * time.Hour, want: "2400.00"},
		{name: "one second past 24 hours bills one day", duration: 24*time.Hour + time.Second, want: "1500.00"},
		{name: "36 hours drops the remainder", duration: 36 * time.Hour, want: "1500.00"},
		{name: "48 hours", duration: 48 * time.Hour, want: "3000.00"},
		{name: "71h59m is still two days", duration: 71*time.Hour + 59*time.Minute, want: "3000.00"},
		{name: "20 minutes rounds hours to 0.33", duration: 20 * time.Minute, want: "33.00"},
		{name: "40 minutes rounds hours to 0.67", duration: 40 * time.Minute, want: "67.00"},
		{name: "zero duration", duration: 0, want: "0.00"},
		{name: "negative duration", duration: -time.Hour, want: "0.00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := booking.ComputeTotalAmount(hourly, daily, start, start.Add(c.duration))
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestComputeTotalAmount_RoundsCentsHalfEven(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	// 0.50 per hour for 1.01h = 0.505 -> 0.50
	got := booking.ComputeTotalAmount(money.FromCents(50), money.Money{}, start, start.Add(time.Hour+36*time.Second))
	assert.Equal(t, int64(50), got.Cents())

	// 0.50 per hour for 1.03h = 0.515 -> 0.52
	got = booking.ComputeTotalAmount(money.FromCents(50), money.Money{}, start, start.Add(time.Hour+108*time.Second))
	assert.Equal(t, int64(52), got.Cents())
}

func TestComputeTotalAmount_RoundsHoursLikeFloatRound(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	hourly := money.FromCents(1234567)

	cases := []struct {
		name    string
		seconds int
		want    int64
	}{
		// 1.055 is stored just below the tie
		{name: "3798s bills 1.05h", seconds: 3798, want: 1296295},
		{name: "3654s bills 1.01h", seconds: 3654, want: 1246913},
		{name: "5418s bills 1.50h", seconds: 5418, want: 1851850},
		// exact binary ties go to the even hundredth
		{name: "1.125h bills 1.12h", seconds: 4050, want: divEven(1234567*112, 100)},
		{name: "1.375h bills 1.38h", seconds: 4950, want: divEven(1234567*138, 100)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := booking.ComputeTotalAmount(hourly, money.Money{}, start, start.Add(time.Duration(c.seconds)*time.Second))
			assert.Equal(t, c.want, got.Cents())
		})
	}
}

// divEven mirrors the cent rounding for expectations that are easier to
// state as a product.
func divEven(n, d int64) int64 {
	q, r := n/d, n%d
	if 2*r > d || (2*r == d && q%2 != 0) {
		return q + 1
	}
	return q
}

func TestComputeTotalAmount_LargestRatesDoNotWrap(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	top := money.FromCents(money.MaxAmount)

	hourly := booking.ComputeTotalAmount(top, top, start, start.Add(24*time.Hour))
	assert.Equal(t, money.MaxAmount*24, hourly.Cents())

	tenYears := booking.ComputeTotalAmount(top, top, start, start.AddDate(10, 0, 0))
	assert.Positive(t, tenYears.Cents())
	assert.Equal(t, money.MaxAmount*3653, tenYears.Cents())
}

func TestComputeTotalAmount_Monotonic(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	hourly := money.FromCents(4999)
	daily := money.FromCents(50000)

	var prev int64
	for m := 60; m <= 24*60; m += 7 {
		got := booking.ComputeTotalAmount(hourly, daily, start, start.Add(time.Duration(m)*time.Minute)).Cents()
		require.GreaterOrEqual(t, got, prev, "hourly tier at %d minutes", m)
		prev = got
	}

	prev = 0
	for h := 25; h <= 24*10; h++ {
		got := booking.ComputeTotalAmount(hourly, daily, start, start.Add(time.Duration(h)*time.Hour)).Cents()
		require.GreaterOrEqual(t, got, prev, "daily tier at %d hours", h)
		prev = got
	}
}

func TestTieredPriceCalculator(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	slot, err := booking.NewTimeSlot(start, start.Add(3*time.Hour))
	require.NoError(t, err)

	calc := booking.NewTieredPriceCalculator()
	rates := booking.Rates{PerHour: money.FromCents(5000), PerDay: money.FromCents(50000)}

	first := calc.TotalAmount(rates, slot)
	second := calc.TotalAmount(rates, slot)

	assert.Equal(t, "150.00", first.String())
	assert.Equal(t, first, second)
}
