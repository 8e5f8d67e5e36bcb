package repository

import (
	"context"

	"vehicle-rental/internal/domain/category"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"

	"github.com/google/uuid"
)

type CategoryWriteQueries interface {
	CreateCategory(ctx context.Context, db dbq.DBTX, arg dbq.CreateCategoryParams) (dbq.Categories, error)
}

type CategoryRepository struct {
	queries CategoryWriteQueries
	db      dbq.DBTX
}

func NewCategoryRepository(queries CategoryWriteQueries, db dbq.DBTX) *CategoryRepository {
	return &CategoryRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, tx dbq.DBTX, c *category.Category) (uuid.UUID, error) {
	row, err := r.queries.CreateCategory(ctx, tx, dbq.CreateCategoryParams{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		IconClass:   c.IconClass(),
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create category", err)
	}
	return row.ID, nil
}
