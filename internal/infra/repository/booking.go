package repository

import (
	"context"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db dbq.DBTX, arg dbq.CreateBookingParams) (uuid.UUID, error)
	UpdateBookingState(ctx context.Context, db dbq.DBTX, arg dbq.UpdateBookingStateParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      dbq.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db dbq.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx dbq.DBTX, b *booking.Booking) (uuid.UUID, error) {
	id, err := r.queries.CreateBooking(ctx, tx, converter.BookingToCreateParams(b))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// SaveState persists status and payment status; the priced fields are immutable.
func (r *BookingRepository) SaveState(ctx context.Context, tx dbq.DBTX, b *booking.Booking) error {
	n, err := r.queries.UpdateBookingState(ctx, tx, converter.BookingToStateParams(b))
	return rowsAffected(n, err, "booking")
}
