package queries

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrReceiptRender = errs.New("failed to render receipt")

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*BookingView, error)
	StatsByUser(ctx context.Context, userID uuid.UUID) (*BookingStats, error)
}

// ReceiptRenderer turns a booking into a printable document.
type ReceiptRenderer interface {
	Render(b *BookingView) ([]byte, error)
}

type BookingList struct {
	Items []*BookingView `json:"items"`
	Stats *BookingStats  `json:"stats"`
	Page  Page           `json:"page"`
}

type BookingQueries interface {
	GetForActor(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, userID uuid.UUID, rawPage string) (*BookingList, error)
	Receipt(ctx context.Context, id uuid.UUID, actor shared.Actor) ([]byte, error)
}

type bookingQueriesImpl struct {
	repo     BookingReadStore
	renderer ReceiptRenderer
}

func NewBookingQueries(repo BookingReadStore, renderer ReceiptRenderer) BookingQueries {
	return &bookingQueriesImpl{
		repo:     repo,
		renderer: renderer,
	}
}

// GetForActor hides bookings of other users behind not found.
func (q *bookingQueriesImpl) GetForActor(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error) {
	b, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.ID && !actor.IsStaff() {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// GetByIDSystem skips the ownership check; used for idempotent replays.
func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, rawPage string) (*BookingList, error) {
	stats, err := q.repo.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := NewPage(ParsePageNumber(rawPage), BookingPageSize, stats.Total)
	items, err := q.repo.ListByUser(ctx, userID, int32(page.Size), int32(page.Offset()))
	if err != nil {
		return nil, err
	}
	return &BookingList{Items: items, Stats: stats, Page: page}, nil
}

func (q *bookingQueriesImpl) Receipt(ctx context.Context, id uuid.UUID, actor shared.Actor) ([]byte, error) {
	b, err := q.GetForActor(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	pdf, err := q.renderer.Render(b)
	if err != nil {
		return nil, errs.Mark(err, ErrReceiptRender)
	}
	return pdf, nil
}
