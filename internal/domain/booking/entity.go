package booking

import (
	"errors"
	"time"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrVehicleUnavailable   = errors.New("vehicle is not available")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrPriceTooLarge        = errors.New("vehicle price exceeds the supported range")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")
	ErrNotCancellable       = errors.New("only pending or confirmed bookings can be cancelled")
	ErrCancelledNotPayable  = errors.New("cancelled booking cannot be marked paid")
	ErrEmptyLocation        = errors.New("location is required")
	ErrLocationTooLong      = errors.New("location exceeds maximum length")
)

// VehicleSpec is what a booking needs to know about the vehicle at creation.
type VehicleSpec struct {
	ID          uuid.UUID
	Rates       Rates
	IsAvailable bool
}

type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	vehicleID      uuid.UUID
	timeSlot       TimeSlot
	pickupLocation Location
	returnLocation Location
	totalAmount    money.Money
	status         Status
	paymentStatus  PaymentStatus
	createdAt      time.Time
	updatedAt      time.Time
}

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clk clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clk,
		PriceCalculator: priceCalculator,
	}
}

// CreateBooking validates the interval against the factory clock and freezes
// the price. The result is pending/pending.
func (f *Factory) CreateBooking(
	veh VehicleSpec,
	userID uuid.UUID,
	start, end time.Time,
	pickup, dropoff Location,
) (*Booking, error) {
	now := f.Clock.Now()
	if err := Validate(start, end, now); err != nil {
		return nil, err
	}
	if !veh.IsAvailable {
		return nil, ErrVehicleUnavailable
	}
	if veh.Rates.PerHour.IsNegative() || veh.Rates.PerDay.IsNegative() {
		return nil, ErrNegativePrice
	}
	if veh.Rates.PerHour.Exceeds() || veh.Rates.PerDay.Exceeds() {
		return nil, ErrPriceTooLarge
	}

	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:             uuid.New(),
		userID:         userID,
		vehicleID:      veh.ID,
		timeSlot:       slot,
		pickupLocation: pickup,
		returnLocation: dropoff,
		totalAmount:    f.PriceCalculator.TotalAmount(veh.Rates, slot),
		status:         StatusPending,
		paymentStatus:  PaymentPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructBooking(
	id, userID, vehicleID uuid.UUID,
	timeSlot TimeSlot,
	pickup, dropoff Location,
	totalAmount money.Money,
	status Status,
	paymentStatus PaymentStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		vehicleID:      vehicleID,
		timeSlot:       timeSlot,
		pickupLocation: pickup,
		returnLocation: dropoff,
		totalAmount:    totalAmount,
		status:         status,
		paymentStatus:  paymentStatus,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) Cancel(now time.Time) error {
	if !b.status.IsCancellable() {
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) SetPaymentStatus(p PaymentStatus, now time.Time) error {
	if !p.IsValid() {
		return ErrInvalidPaymentStatus
	}
	if p == PaymentPaid && b.status == StatusCancelled {
		return ErrCancelledNotPayable
	}
	b.paymentStatus = p
	b.updatedAt = now
	return nil
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) UserID() uuid.UUID            { return b.userID }
func (b *Booking) VehicleID() uuid.UUID         { return b.vehicleID }
func (b *Booking) TimeSlot() TimeSlot           { return b.timeSlot }
func (b *Booking) PickupLocation() Location     { return b.pickupLocation }
func (b *Booking) ReturnLocation() Location     { return b.returnLocation }
func (b *Booking) TotalAmount() money.Money     { return b.totalAmount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
