package queries

import (
	"context"

	"github.com/google/uuid"

	"vehicle-rental/internal/infra"
)

const ProfileRecentReviews = 5

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
}

type ProfileSummary struct {
	User          *AuthorizedUserView `json:"user"`
	Profile       *ProfileView        `json:"profile"`
	BookingStats  *BookingStats       `json:"booking_stats"`
	RecentReviews []*ReviewView       `json:"recent_reviews"`
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileSummary, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
	bookings  BookingReadStore
	reviews   ReviewReadStore
}

func NewUserQueries(readStore UserReadStore, bookings BookingReadStore, reviews ReviewReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
		bookings:  bookings,
		reviews:   reviews,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	user, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// GetProfile returns an empty profile for users who never saved one.
func (q *userQueriesImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileSummary, error) {
	user, err := q.GetCurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := q.readStore.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &ProfileView{UserID: userID}
	}
	stats, err := q.bookings.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := q.reviews.FindByUser(ctx, userID, ProfileRecentReviews)
	if err != nil {
		return nil, err
	}
	return &ProfileSummary{
		User:          user,
		Profile:       profile,
		BookingStats:  stats,
		RecentReviews: recent,
	}, nil
}
