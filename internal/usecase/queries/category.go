package queries

import (
	"context"

	"vehicle-rental/internal/infra"

	"github.com/google/uuid"
)

type CategoryReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CategoryView, error)
	List(ctx context.Context) ([]*CategoryView, error)
}

type CategoryVehicles struct {
	Category *CategoryView `json:"category"`
	Vehicles *VehiclePage  `json:"vehicles"`
}

type CategoryQueries interface {
	List(ctx context.Context) ([]*CategoryView, error)
	VehiclesInCategory(ctx context.Context, id uuid.UUID, rawPage string) (*CategoryVehicles, error)
}

type categoryQueriesImpl struct {
	categories CategoryReadStore
	vehicles   VehicleQueries
}

func NewCategoryQueries(categories CategoryReadStore, vehicles VehicleQueries) CategoryQueries {
	return &categoryQueriesImpl{
		categories: categories,
		vehicles:   vehicles,
	}
}

func (q *categoryQueriesImpl) List(ctx context.Context) ([]*CategoryView, error) {
	return q.categories.List(ctx)
}

func (q *categoryQueriesImpl) VehiclesInCategory(ctx context.Context, id uuid.UUID, rawPage string) (*CategoryVehicles, error) {
	cat, err := q.categories.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	page, err := q.vehicles.List(ctx, VehicleFilter{CategoryID: &cat.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &CategoryVehicles{Category: cat, Vehicles: page}, nil
}
