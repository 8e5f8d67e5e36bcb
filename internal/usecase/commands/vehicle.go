package commands

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const constraintVehicleName = "vehicles_name_key"

type VehicleInput struct {
	Name         string
	CategoryID   uuid.UUID
	Type         string
	Brand        string
	Model        string
	Year         int
	FuelType     string
	Transmission string
	Seats        int
	PricePerDay  string
	PricePerHour string
	Description  string
	Features     []string
	Mileage      string
	Color        string
	IsAvailable  bool
}

type VehicleCommands interface {
	Create(ctx context.Context, in VehicleInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in VehicleInput) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	UploadImage(ctx context.Context, id uuid.UUID, img ImageUpload) (string, error)
}

type vehicleCommandsImpl struct {
	uow           shared.UnitOfWork
	images        ImageStore
	cache         queries.CatalogCache
	clock         clock.Clock
	maxImageBytes int64
}

func NewVehicleCommands(
	uow shared.UnitOfWork,
	images ImageStore,
	cache queries.CatalogCache,
	clk clock.Clock,
	maxImageBytes int64,
) VehicleCommands {
	return &vehicleCommandsImpl{
		uow:           uow,
		images:        images,
		cache:         cache,
		clock:         clk,
		maxImageBytes: maxImageBytes,
	}
}

func (c *vehicleCommandsImpl) Create(ctx context.Context, in VehicleInput) (uuid.UUID, error) {
	params, err := toVehicleParams(in)
	if err != nil {
		return uuid.Nil, err
	}
	v, err := vehicle.NewVehicle(params, c.clock.Now())
	if err != nil {
		return uuid.Nil, invalid(err)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := requireCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		id, err = tx.Vehicles().Create(ctx, tx.DB(), v)
		return vehicleWriteErr(err)
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.invalidate(ctx, id)
	slog.Info("vehicle created", "vehicle_id", id, "name", v.Name())
	return id, nil
}

func (c *vehicleCommandsImpl) Update(ctx context.Context, id uuid.UUID, in VehicleInput) error {
	params, err := toVehicleParams(in)
	if err != nil {
		return err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := lockVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.CategoryID != v.CategoryID() {
			if err := requireCategory(ctx, tx, in.CategoryID); err != nil {
				return err
			}
		}
		if err := v.Update(params, c.clock.Now()); err != nil {
			return invalid(err)
		}
		return vehicleWriteErr(tx.Vehicles().Update(ctx, tx.DB(), v))
	})
	if err != nil {
		return err
	}

	c.invalidate(ctx, id)
	return nil
}

func (c *vehicleCommandsImpl) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := lockVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		v.SetAvailability(available, c.clock.Now())
		return vehicleWriteErr(tx.Vehicles().SaveAvailability(ctx, tx.DB(), v))
	})
	if err != nil {
		return err
	}

	c.invalidate(ctx, id)
	slog.Info("vehicle availability changed", "vehicle_id", id, "available", available)
	return nil
}

// UploadImage stores a JPEG or PNG of at most 4000x4000 pixels and points the
// vehicle at it.
func (c *vehicleCommandsImpl) UploadImage(ctx context.Context, id uuid.UUID, img ImageUpload) (string, error) {
	ext, body, err := vehicleImages.check(img, c.maxImageBytes)
	if err != nil {
		return "", err
	}

	if _, err := c.uow.CommandReads().VehicleByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrVehicleNotFound
		}
		return "", errs.Mark(err, ErrDatabaseFailed)
	}

	key := "vehicles/" + id.String() + "/" + uuid.NewString() + ext
	url, err := c.images.Put(ctx, key, body, img.Size, img.ContentType)
	if err != nil {
		return "", errs.Mark(errs.Wrapf(err, "put object %s", key), ErrImageUpload)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := lockVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		v.SetImageURL(url, c.clock.Now())
		return vehicleWriteErr(tx.Vehicles().SaveImage(ctx, tx.DB(), v))
	})
	if err != nil {
		return "", err
	}

	c.invalidate(ctx, id)
	slog.Info("vehicle image uploaded", "vehicle_id", id, "key", key)
	return url, nil
}

func (c *vehicleCommandsImpl) invalidate(ctx context.Context, id uuid.UUID) {
	c.cache.Delete(ctx, queries.HomeCacheKey, queries.VehicleCacheKey(id))
}

func toVehicleParams(in VehicleInput) (vehicle.Params, error) {
	perDay, err := money.Parse(in.PricePerDay)
	if err != nil {
		return vehicle.Params{}, invalid(errs.Wrap(err, "price_per_day"))
	}
	perHour, err := money.Parse(in.PricePerHour)
	if err != nil {
		return vehicle.Params{}, invalid(errs.Wrap(err, "price_per_hour"))
	}
	return vehicle.Params{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		Type:         in.Type,
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		FuelType:     in.FuelType,
		Transmission: in.Transmission,
		Seats:        in.Seats,
		PricePerDay:  perDay,
		PricePerHour: perHour,
		Description:  in.Description,
		Features:     in.Features,
		Mileage:      in.Mileage,
		Color:        in.Color,
		IsAvailable:  in.IsAvailable,
	}, nil
}

func requireCategory(ctx context.Context, tx shared.Tx, id uuid.UUID) error {
	if _, err := tx.Reads().CategoryByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCategoryNotFound
		}
		return errs.Mark(err, ErrDatabaseFailed)
	}
	return nil
}

func lockVehicle(ctx context.Context, tx shared.Tx, id uuid.UUID) (*vehicle.Vehicle, error) {
	v, err := tx.Reads().VehicleForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}
	return v, nil
}

func vehicleWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindDuplicateKey) && infra.ConstraintName(err) == constraintVehicleName:
		return ErrDuplicateVehicle
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return ErrCategoryNotFound
	case infra.IsKind(err, infra.KindNotFound):
		return ErrVehicleNotFound
	}
	return errs.Mark(err, ErrDatabaseFailed)
}
