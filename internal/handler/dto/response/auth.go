package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

type RegisterResponse struct {
	ID uuid.UUID `json:"id"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromUserView(u *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

type ProfileResponse struct {
	User          *UserResponse         `json:"user"`
	Profile       *queries.ProfileView  `json:"profile"`
	BookingStats  *queries.BookingStats `json:"booking_stats"`
	RecentReviews []*ReviewResponse     `json:"recent_reviews"`
}

func FromProfileSummary(s *queries.ProfileSummary) *ProfileResponse {
	return &ProfileResponse{
		User:          FromUserView(s.User),
		Profile:       s.Profile,
		BookingStats:  s.BookingStats,
		RecentReviews: FromReviewViews(s.RecentReviews),
	}
}
