package commands

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/domain/category"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type CategoryInput struct {
	Name        string
	Description string
	IconClass   string
}

type CategoryCommands interface {
	Create(ctx context.Context, in CategoryInput) (uuid.UUID, error)
}

type categoryCommandsImpl struct {
	uow   shared.UnitOfWork
	cache queries.CatalogCache
}

func NewCategoryCommands(uow shared.UnitOfWork, cache queries.CatalogCache) CategoryCommands {
	return &categoryCommandsImpl{uow: uow, cache: cache}
}

func (c *categoryCommandsImpl) Create(ctx context.Context, in CategoryInput) (uuid.UUID, error) {
	cat, err := category.NewCategory(in.Name, in.Description, in.IconClass)
	if err != nil {
		return uuid.Nil, invalid(err)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Categories().Create(ctx, tx.DB(), cat)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCategory
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.cache.Delete(ctx, queries.HomeCacheKey)
	slog.Info("category created", "category_id", id, "name", cat.Name())
	return id, nil
}
