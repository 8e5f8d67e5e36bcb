package converter

import (
	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) dbq.CreateBookingParams {
	slot := b.TimeSlot()
	return dbq.CreateBookingParams{
		ID:               b.ID(),
		UserID:           b.UserID(),
		VehicleID:        b.VehicleID(),
		StartDate:        pgconv.TimeToPgtype(slot.Start()),
		EndDate:          pgconv.TimeToPgtype(slot.End()),
		PickupLocation:   b.PickupLocation().String(),
		ReturnLocation:   b.ReturnLocation().String(),
		TotalAmountCents: b.TotalAmount().Cents(),
		Status:           b.Status().String(),
		PaymentStatus:    b.PaymentStatus().String(),
		CreatedAt:        pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BookingToStateParams(b *booking.Booking) dbq.UpdateBookingStateParams {
	return dbq.UpdateBookingStateParams{
		ID:            b.ID(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		UpdatedAt:     pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

// BookingFromRow rebuilds the aggregate. Rows that no longer satisfy the
// domain rules are reported rather than silently repaired.
func BookingFromRow(row dbq.Bookings) (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(row.StartDate.Time, row.EndDate.Time)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has invalid time slot")
	}
	pickup, err := booking.NewLocation(row.PickupLocation)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has invalid pickup location")
	}
	dropoff, err := booking.NewLocation(row.ReturnLocation)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has invalid return location")
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has invalid status")
	}
	payment, err := booking.NewPaymentStatus(row.PaymentStatus)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has invalid payment status")
	}

	return booking.ReconstructBooking(
		row.ID,
		row.UserID,
		row.VehicleID,
		slot,
		pickup,
		dropoff,
		money.FromCents(row.TotalAmountCents),
		status,
		payment,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
