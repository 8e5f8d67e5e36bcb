package request

import (
	"time"

	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/timeutil"
	"vehicle-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

// Dates may be RFC 3339 or naive local times such as "2026-05-01T10:00";
// naive values are read in the service time zone.
type CreateBookingRequest struct {
	StartDate      string `json:"start_date" binding:"required"`
	EndDate        string `json:"end_date" binding:"required"`
	PickupLocation string `json:"pickup_location" binding:"required,max=200"`
	ReturnLocation string `json:"return_location" binding:"required,max=200"`
}

func (r *CreateBookingRequest) ToInput(vehicleID uuid.UUID, loc *time.Location) (commands.CreateBookingInput, error) {
	start, err := timeutil.ParseInstant(r.StartDate, loc)
	if err != nil {
		return commands.CreateBookingInput{}, errs.Wrap(err, "start_date")
	}
	end, err := timeutil.ParseInstant(r.EndDate, loc)
	if err != nil {
		return commands.CreateBookingInput{}, errs.Wrap(err, "end_date")
	}
	return commands.CreateBookingInput{
		VehicleID:      vehicleID,
		StartDate:      start,
		EndDate:        end,
		PickupLocation: r.PickupLocation,
		ReturnLocation: r.ReturnLocation,
	}, nil
}

type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type QuoteQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

func (q *QuoteQuery) Parse(loc *time.Location) (time.Time, time.Time, error) {
	start, err := timeutil.ParseInstant(q.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Wrap(err, "start")
	}
	end, err := timeutil.ParseInstant(q.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Wrap(err, "end")
	}
	return start, end, nil
}
