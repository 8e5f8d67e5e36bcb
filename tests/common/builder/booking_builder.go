//go:build unit || e2e

package builder

import (
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	Now            time.Time
	UserID         uuid.UUID
	VehicleID      uuid.UUID
	Start          time.Time
	End            time.Time
	PerHourCents   int64
	PerDayCents    int64
	IsAvailable    bool
	PickupLocation string
	ReturnLocation string
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)
	return &BookingBuilder{
		Now:            now,
		UserID:         uuid.New(),
		VehicleID:      uuid.New(),
		Start:          start,
		End:            start.Add(3 * time.Hour),
		PerHourCents:   10000,
		PerDayCents:    150000,
		IsAvailable:    true,
		PickupLocation: "MG Road Station",
		ReturnLocation: "Airport Terminal 1",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	pickup, err := booking.NewLocation(b.PickupLocation)
	if err != nil {
		return nil, err
	}
	dropoff, err := booking.NewLocation(b.ReturnLocation)
	if err != nil {
		return nil, err
	}

	factory := booking.NewFactory(clock.NewMockClock(b.Now), booking.NewTieredPriceCalculator())
	return factory.CreateBooking(b.VehicleSpec(), b.UserID, b.Start, b.End, pickup, dropoff)
}

// BuildReconstructed skips creation rules, for lifecycle tests.
func (b *BookingBuilder) BuildReconstructed(status booking.Status) *booking.Booking {
	slot, _ := booking.NewTimeSlot(b.Start, b.End)
	pickup, _ := booking.NewLocation(b.PickupLocation)
	dropoff, _ := booking.NewLocation(b.ReturnLocation)
	total := booking.ComputeTotalAmount(money.FromCents(b.PerHourCents), money.FromCents(b.PerDayCents), b.Start, b.End)
	return booking.ReconstructBooking(
		uuid.New(), b.UserID, b.VehicleID, slot, pickup, dropoff, total,
		status, booking.PaymentPending, b.Now, b.Now,
	)
}

func (b *BookingBuilder) VehicleSpec() booking.VehicleSpec {
	return booking.VehicleSpec{
		ID: b.VehicleID,
		Rates: booking.Rates{
			PerHour: money.FromCents(b.PerHourCents),
			PerDay:  money.FromCents(b.PerDayCents),
		},
		IsAvailable: b.IsAvailable,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithVehicleID(id uuid.UUID) *BookingBuilder {
	b.VehicleID = id
	return b
}

func (b *BookingBuilder) WithStart(start time.Time) *BookingBuilder {
	b.Start = start
	return b
}

func (b *BookingBuilder) WithEnd(end time.Time) *BookingBuilder {
	b.End = end
	return b
}

func (b *BookingBuilder) WithRates(perHourCents, perDayCents int64) *BookingBuilder {
	b.PerHourCents = perHourCents
	b.PerDayCents = perDayCents
	return b
}

func (b *BookingBuilder) WithLocations(pickup, dropoff string) *BookingBuilder {
	b.PickupLocation = pickup
	b.ReturnLocation = dropoff
	return b
}

func (b *BookingBuilder) AsUnavailable() *BookingBuilder {
	b.IsAvailable = false
	return b
}
