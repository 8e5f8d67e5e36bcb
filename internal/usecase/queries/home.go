package queries

import (
	"context"

	"vehicle-rental/internal/domain/vehicle"
)

const FeaturedLimit = 6

type HomeView struct {
	Featured   []*VehicleListItem `json:"featured"`
	Categories []*CategoryView    `json:"categories"`
	TypeCounts []TypeCount        `json:"type_counts"`
}

type HomeQueries interface {
	Get(ctx context.Context) (*HomeView, error)
}

type homeQueriesImpl struct {
	vehicles   VehicleReadStore
	categories CategoryReadStore
	cache      CatalogCache
}

func NewHomeQueries(vehicles VehicleReadStore, categories CategoryReadStore, cache CatalogCache) HomeQueries {
	return &homeQueriesImpl{
		vehicles:   vehicles,
		categories: categories,
		cache:      cache,
	}
}

func (q *homeQueriesImpl) Get(ctx context.Context) (*HomeView, error) {
	var cached HomeView
	if q.cache.Get(ctx, HomeCacheKey, &cached) {
		return &cached, nil
	}

	featured, err := q.vehicles.ListFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	categories, err := q.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := q.vehicles.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	home := &HomeView{
		Featured:   featured,
		Categories: categories,
		TypeCounts: countsForAllTypes(counts),
	}
	q.cache.Set(ctx, HomeCacheKey, home)
	return home, nil
}

// countsForAllTypes lists every vehicle type, including those with no available vehicles.
func countsForAllTypes(counts []TypeCount) []TypeCount {
	byType := make(map[string]int64, len(counts))
	for _, c := range counts {
		byType[c.VehicleType] = c.Count
	}
	out := make([]TypeCount, 0, len(vehicle.AllTypes))
	for _, t := range vehicle.AllTypes {
		out = append(out, TypeCount{
			VehicleType: t.String(),
			Label:       t.Label(),
			Count:       byType[t.String()],
		})
	}
	return out
}
