package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadQueries interface {
	GetBookingViewByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.BookingViewRow, error)
	ListBookingsByUser(ctx context.Context, db dbq.DBTX, arg dbq.ListBookingsByUserParams) ([]dbq.BookingViewRow, error)
	CountBookingsByUser(ctx context.Context, db dbq.DBTX, userID uuid.UUID) (dbq.CountBookingsByUserRow, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      dbq.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db dbq.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	view := &queries.BookingView{}
	if err := copyRow(view, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to map booking row", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUser(ctx, r.db, dbq.ListBookingsByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	result := make([]*queries.BookingView, len(rows))
	for i := range rows {
		view := &queries.BookingView{}
		if err := copyRow(view, &rows[i]); err != nil {
			return nil, infra.WrapRepoErr("failed to map booking row", err)
		}
		result[i] = view
	}
	return result, nil
}

func (r *BookingReadStore) StatsByUser(ctx context.Context, userID uuid.UUID) (*queries.BookingStats, error) {
	row, err := r.queries.CountBookingsByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by user", err)
	}
	return &queries.BookingStats{
		Total:     row.Total,
		Pending:   row.Pending,
		Confirmed: row.Confirmed,
		Active:    row.Active,
		Completed: row.Completed,
		Cancelled: row.Cancelled,
	}, nil
}
