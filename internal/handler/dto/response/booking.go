package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	VehicleID      uuid.UUID `json:"vehicle_id"`
	VehicleName    string    `json:"vehicle_name"`
	VehicleType    string    `json:"vehicle_type"`
	VehicleBrand   string    `json:"vehicle_brand"`
	VehicleModel   string    `json:"vehicle_model"`
	VehicleImage   *string   `json:"vehicle_image,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	PickupLocation string    `json:"pickup_location"`
	ReturnLocation string    `json:"return_location"`
	TotalAmount    string    `json:"total_amount"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromBookingView(b *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		Username:       b.Username,
		VehicleID:      b.VehicleID,
		VehicleName:    b.VehicleName,
		VehicleType:    b.VehicleType,
		VehicleBrand:   b.VehicleBrand,
		VehicleModel:   b.VehicleModel,
		VehicleImage:   b.VehicleImage,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
		TotalAmount:    amount(b.TotalAmountCents),
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

type BookingListResponse struct {
	Items []*BookingResponse    `json:"items"`
	Stats *queries.BookingStats `json:"stats"`
	Page  queries.Page          `json:"page"`
}

func FromBookingList(l *queries.BookingList) *BookingListResponse {
	items := make([]*BookingResponse, len(l.Items))
	for i, b := range l.Items {
		items[i] = FromBookingView(b)
	}
	return &BookingListResponse{Items: items, Stats: l.Stats, Page: l.Page}
}

type QuoteResponse struct {
	VehicleID   uuid.UUID `json:"vehicle_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Hours       float64   `json:"hours"`
	Tier        string    `json:"tier"`
	TotalAmount string    `json:"total_amount"`
	Available   bool      `json:"available"`
}

func FromPriceQuote(q *queries.PriceQuote) *QuoteResponse {
	return &QuoteResponse{
		VehicleID:   q.VehicleID,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		Hours:       q.Hours,
		Tier:        q.Tier,
		TotalAmount: q.TotalAmount.String(),
		Available:   q.Available,
	}
}
