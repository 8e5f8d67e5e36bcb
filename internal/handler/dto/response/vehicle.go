package response

import (
	"time"

	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleCardResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	VehicleType  string    `json:"vehicle_type"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int32     `json:"year"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Seats        int32     `json:"seats"`
	PricePerDay  string    `json:"price_per_day"`
	PricePerHour string    `json:"price_per_hour"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsAvailable  bool      `json:"is_available"`
}

func FromVehicleListItem(v *queries.VehicleListItem) *VehicleCardResponse {
	return &VehicleCardResponse{
		ID:           v.ID,
		Name:         v.Name,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		VehicleType:  v.VehicleType,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		FuelType:     v.FuelType,
		Transmission: v.Transmission,
		Seats:        v.Seats,
		PricePerDay:  amount(v.PricePerDayCents),
		PricePerHour: amount(v.PricePerHourCents),
		ImageURL:     v.ImageURL,
		IsAvailable:  v.IsAvailable,
	}
}

func FromVehicleListItems(items []*queries.VehicleListItem) []*VehicleCardResponse {
	res := make([]*VehicleCardResponse, len(items))
	for i, v := range items {
		res[i] = FromVehicleListItem(v)
	}
	return res
}

type VehicleResponse struct {
	*VehicleCardResponse
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Mileage     string    `json:"mileage"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromVehicleView(v *queries.VehicleView) *VehicleResponse {
	features := v.Features
	if features == nil {
		features = []string{}
	}
	return &VehicleResponse{
		VehicleCardResponse: FromVehicleListItem(&v.VehicleListItem),
		Description:         v.Description,
		Features:            features,
		Mileage:             v.Mileage,
		Color:               v.Color,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

type VehiclePageResponse struct {
	Items []*VehicleCardResponse `json:"items"`
	Page  queries.Page           `json:"page"`
}

func FromVehiclePage(p *queries.VehiclePage) *VehiclePageResponse {
	return &VehiclePageResponse{Items: FromVehicleListItems(p.Items), Page: p.Page}
}

type VehicleDetailResponse struct {
	Vehicle       *VehicleResponse       `json:"vehicle"`
	Reviews       []*ReviewResponse      `json:"reviews"`
	ReviewCount   int32                  `json:"review_count"`
	AverageRating float64                `json:"average_rating"`
	UserReview    *ReviewResponse        `json:"user_review,omitempty"`
	Similar       []*VehicleCardResponse `json:"similar"`
}

func FromVehicleDetail(d *queries.VehicleDetail) *VehicleDetailResponse {
	res := &VehicleDetailResponse{
		Vehicle:       FromVehicleView(d.Vehicle),
		Reviews:       FromReviewViews(d.Reviews),
		ReviewCount:   d.ReviewCount,
		AverageRating: d.AverageRating,
		Similar:       FromVehicleListItems(d.Similar),
	}
	if d.UserReview != nil {
		res.UserReview = FromReviewView(d.UserReview)
	}
	return res
}

type HomeResponse struct {
	Featured   []*VehicleCardResponse  `json:"featured"`
	Categories []*queries.CategoryView `json:"categories"`
	TypeCounts []queries.TypeCount     `json:"type_counts"`
}

func FromHomeView(h *queries.HomeView) *HomeResponse {
	return &HomeResponse{
		Featured:   FromVehicleListItems(h.Featured),
		Categories: h.Categories,
		TypeCounts: h.TypeCounts,
	}
}

type CategoryVehiclesResponse struct {
	Category *queries.CategoryView `json:"category"`
	Vehicles *VehiclePageResponse  `json:"vehicles"`
}

func FromCategoryVehicles(cv *queries.CategoryVehicles) *CategoryVehiclesResponse {
	return &CategoryVehiclesResponse{
		Category: cv.Category,
		Vehicles: FromVehiclePage(cv.Vehicles),
	}
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
