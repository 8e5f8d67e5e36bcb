package commands

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/domain/category"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// SeedVehicle names its category instead of referencing it by id.
type SeedVehicle struct {
	Category string
	VehicleInput
}

type SeedCatalog struct {
	Categories []CategoryInput
	Vehicles   []SeedVehicle
}

type SeedResult struct {
	CategoriesCreated int
	VehiclesCreated   int
	VehiclesSkipped   int
}

type SeedCommands interface {
	Seed(ctx context.Context, catalog SeedCatalog) (*SeedResult, error)
}

type seedCommandsImpl struct {
	uow   shared.UnitOfWork
	cache queries.CatalogCache
	clock clock.Clock
}

func NewSeedCommands(uow shared.UnitOfWork, cache queries.CatalogCache, clk clock.Clock) SeedCommands {
	return &seedCommandsImpl{uow: uow, cache: cache, clock: clk}
}

// Seed loads the catalog in one transaction. Existing categories are reused
// and vehicles whose name already exists are skipped, so reruns are safe.
func (c *seedCommandsImpl) Seed(ctx context.Context, catalog SeedCatalog) (*SeedResult, error) {
	result := &SeedResult{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		*result = SeedResult{}
		categoryIDs := make(map[string]uuid.UUID, len(catalog.Categories))

		for _, in := range catalog.Categories {
			id, created, err := c.ensureCategory(ctx, tx, in)
			if err != nil {
				return errs.Wrapf(err, "category %q", in.Name)
			}
			categoryIDs[in.Name] = id
			if created {
				result.CategoriesCreated++
			}
		}

		for _, sv := range catalog.Vehicles {
			exists, err := tx.Reads().VehicleNameExists(ctx, sv.Name)
			if err != nil {
				return errs.Mark(err, ErrDatabaseFailed)
			}
			if exists {
				result.VehiclesSkipped++
				continue
			}

			catID, ok := categoryIDs[sv.Category]
			if !ok {
				id, _, err := c.ensureCategory(ctx, tx, CategoryInput{Name: sv.Category})
				if err != nil {
					return errs.Wrapf(err, "category %q", sv.Category)
				}
				catID, categoryIDs[sv.Category] = id, id
			}

			in := sv.VehicleInput
			in.CategoryID = catID
			params, err := toVehicleParams(in)
			if err != nil {
				return errs.Wrapf(err, "vehicle %q", sv.Name)
			}
			v, err := vehicle.NewVehicle(params, c.clock.Now())
			if err != nil {
				return invalid(errs.Wrapf(err, "vehicle %q", sv.Name))
			}
			if _, err := tx.Vehicles().Create(ctx, tx.DB(), v); err != nil {
				return vehicleWriteErr(err)
			}
			result.VehiclesCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.Delete(ctx, queries.HomeCacheKey)
	slog.Info("catalog seeded",
		"categories_created", result.CategoriesCreated,
		"vehicles_created", result.VehiclesCreated,
		"vehicles_skipped", result.VehiclesSkipped,
	)
	return result, nil
}

func (c *seedCommandsImpl) ensureCategory(ctx context.Context, tx shared.Tx, in CategoryInput) (uuid.UUID, bool, error) {
	existing, err := tx.Reads().CategoryByName(ctx, in.Name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return uuid.Nil, false, errs.Mark(err, ErrDatabaseFailed)
	}

	cat, err := category.NewCategory(in.Name, in.Description, in.IconClass)
	if err != nil {
		return uuid.Nil, false, invalid(err)
	}
	id, err := tx.Categories().Create(ctx, tx.DB(), cat)
	if err != nil {
		return uuid.Nil, false, errs.Mark(err, ErrDatabaseFailed)
	}
	return id, true, nil
}
