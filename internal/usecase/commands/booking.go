package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	BookingTopic          = "bookings"
	createBookingEndpoint = "POST /api/vehicles/:id/bookings"
	idempotencyTTL        = 24 * time.Hour

	bookingRangeConstraint = "bookings_range_check"
)

// Event kinds written to the outbox.
const (
	EventBookingCreated        = "booking.created"
	EventBookingCancelled      = "booking.cancelled"
	EventBookingStatusChanged  = "booking.status_changed"
	EventBookingPaymentUpdated = "booking.payment_updated"
)

type CreateBookingInput struct {
	VehicleID      uuid.UUID `json:"vehicle_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	PickupLocation string    `json:"pickup_location"`
	ReturnLocation string    `json:"return_location"`
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

// BookingEvent is the outbox payload of every booking state change.
type BookingEvent struct {
	Type             string    `json:"type"`
	BookingID        uuid.UUID `json:"booking_id"`
	UserID           uuid.UUID `json:"user_id"`
	VehicleID        uuid.UUID `json:"vehicle_id"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type BookingOptions struct {
	PreventOverlap bool
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput, userID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor) (*queries.BookingView, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, status string, actor shared.Actor) (*queries.BookingView, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, actor shared.Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	factory  *booking.Factory
	bookings queries.BookingQueries
	clock    clock.Clock
	opts     BookingOptions
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookings queries.BookingQueries,
	clk clock.Clock,
	opts BookingOptions,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		factory:  factory,
		bookings: bookings,
		clock:    clk,
		opts:     opts,
	}
}

// Create books a vehicle. A request replayed with the same idempotency key
// returns the booking of the first request instead of creating another one.
func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput, userID, idempotencyKey uuid.UUID) (*CreateBookingResult, error) {
	pickup, err := booking.NewLocation(in.PickupLocation)
	if err != nil {
		return nil, invalid(err)
	}
	dropoff, err := booking.NewLocation(in.ReturnLocation)
	if err != nil {
		return nil, invalid(err)
	}

	requestHash := hashRequest(in)
	now := c.clock.Now()

	var (
		bookingID uuid.UUID
		replayed  bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayID, err := c.claimIdempotencyKey(ctx, tx, idempotencyKey, userID, requestHash, now)
		if err != nil {
			return err
		}
		if replayID != uuid.Nil {
			bookingID, replayed = replayID, true
			return nil
		}

		b, err := c.newBooking(ctx, tx, in, userID, pickup, dropoff)
		if err != nil {
			return err
		}
		if bookingID, err = tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindCheckViolated) && infra.ConstraintName(err) == bookingRangeConstraint {
				return invalid(booking.ErrInvalidRange)
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		if err := c.enqueueEvent(ctx, tx, EventBookingCreated, b); err != nil {
			return err
		}
		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, hashID(bookingID), bookingID)
	})
	if err != nil {
		return nil, err
	}

	if !replayed {
		slog.Info("booking created", "booking_id", bookingID, "user_id", userID, "vehicle_id", in.VehicleID)
	}

	// Read-after-write: the view joins user and vehicle data
	view, err := c.bookings.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: view, IsReplayed: replayed}, nil
}

// claimIdempotencyKey returns the booking to replay, or uuid.Nil when this
// request owns the key and should proceed.
func (c *bookingCommandsImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, requestHash string, now time.Time) (uuid.UUID, error) {
	expiresAt := now.Add(idempotencyTTL)
	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, createBookingEndpoint, requestHash, expiresAt)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrIdempotencyCheck)
	}
	if inserted {
		return uuid.Nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrIdempotencyCheck)
	}

	if existing.Expired(now) {
		reclaimed, err := tx.Idempotency().ReclaimExpired(ctx, tx.DB(), key, userID, createBookingEndpoint, requestHash, expiresAt)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrIdempotencyCheck)
		}
		if !reclaimed {
			return uuid.Nil, ErrIdempotencyInProgress
		}
		return uuid.Nil, nil
	}

	if existing.RequestHash != requestHash {
		return uuid.Nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return uuid.Nil, errs.New("completed request missing result booking ID")
		}
		return *existing.ResultBookingID, nil
	case shared.IdempotencyStatusProcessing:
		return uuid.Nil, ErrIdempotencyInProgress
	default:
		return uuid.Nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (c *bookingCommandsImpl) newBooking(
	ctx context.Context,
	tx shared.Tx,
	in CreateBookingInput,
	userID uuid.UUID,
	pickup, dropoff booking.Location,
) (*booking.Booking, error) {
	load := tx.Reads().VehicleByID
	if c.opts.PreventOverlap {
		// Serializes bookings of one vehicle until commit.
		load = tx.Reads().VehicleForUpdate
	}
	v, err := load(ctx, in.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}

	b, err := c.factory.CreateBooking(v.BookingSpec(), userID, in.StartDate, in.EndDate, pickup, dropoff)
	if err != nil {
		if errs.Is(err, booking.ErrVehicleUnavailable) {
			return nil, ErrVehicleUnavailable
		}
		return nil, invalid(err)
	}

	if c.opts.PreventOverlap {
		n, err := tx.Reads().CountOverlappingBookings(ctx, v.ID(), b.TimeSlot())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseFailed)
		}
		if n > 0 {
			return nil, ErrBookingOverlap
		}
	}
	return b, nil
}

// Cancel is owner-only; staff cancel through TransitionStatus.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor) (*queries.BookingView, error) {
	return c.mutate(ctx, id, EventBookingCancelled, func(b *booking.Booking, now time.Time) error {
		if !b.IsOwnedBy(actor.ID) {
			return ErrBookingNotFound
		}
		if err := b.Cancel(now); err != nil {
			return errs.Mark(err, errs.ErrConflict)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) TransitionStatus(ctx context.Context, id uuid.UUID, status string, actor shared.Actor) (*queries.BookingView, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	next, err := booking.NewStatus(status)
	if err != nil {
		return nil, invalid(err)
	}
	return c.mutate(ctx, id, EventBookingStatusChanged, func(b *booking.Booking, now time.Time) error {
		if err := b.TransitionTo(next, now); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, actor shared.Actor) (*queries.BookingView, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	p, err := booking.NewPaymentStatus(status)
	if err != nil {
		return nil, invalid(err)
	}
	return c.mutate(ctx, id, EventBookingPaymentUpdated, func(b *booking.Booking, now time.Time) error {
		if err := b.SetPaymentStatus(p, now); err != nil {
			return errs.Mark(err, errs.ErrConflict)
		}
		return nil
	})
}

// mutate locks the booking, applies change, saves the new state and
// records the event in one transaction.
func (c *bookingCommandsImpl) mutate(ctx context.Context, id uuid.UUID, event string, change func(b *booking.Booking, now time.Time) error) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		if err := change(b, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().SaveState(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return c.enqueueEvent(ctx, tx, event, b)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("booking updated", "booking_id", id, "event", event)
	return c.bookings.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) enqueueEvent(ctx context.Context, tx shared.Tx, kind string, b *booking.Booking) error {
	now := c.clock.Now()
	payload, err := json.Marshal(BookingEvent{
		Type:             kind,
		BookingID:        b.ID(),
		UserID:           b.UserID(),
		VehicleID:        b.VehicleID(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		TotalAmountCents: b.TotalAmount().Cents(),
		StartDate:        b.TimeSlot().Start(),
		EndDate:          b.TimeSlot().End(),
		OccurredAt:       now,
	})
	if err != nil {
		return errs.Wrap(err, "marshal booking event")
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), kind, BookingTopic, payload, now); err != nil {
		return errs.Mark(err, ErrDatabaseFailed)
	}
	return nil
}

func hashRequest(in CreateBookingInput) string {
	in.StartDate, in.EndDate = in.StartDate.UTC(), in.EndDate.UTC()
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashID(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
