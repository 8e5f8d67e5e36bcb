package queries

import (
	"context"

	"github.com/google/uuid"
)

const HomeCacheKey = "catalog:home"

func VehicleCacheKey(id uuid.UUID) string {
	return "catalog:vehicle:" + id.String()
}

// CatalogCache stores JSON-encodable catalog views. Implementations fail open:
// a miss and a broken backend look the same to callers.
type CatalogCache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
	Delete(ctx context.Context, keys ...string)
}
