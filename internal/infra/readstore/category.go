package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type CategoryReadQueries interface {
	GetCategoryByID(ctx context.Context, db dbq.DBTX, id uuid.UUID) (dbq.Categories, error)
	ListCategories(ctx context.Context, db dbq.DBTX) ([]dbq.Categories, error)
}

type CategoryReadStore struct {
	queries CategoryReadQueries
	db      dbq.DBTX
}

func NewCategoryReadStore(queries CategoryReadQueries, db dbq.DBTX) *CategoryReadStore {
	return &CategoryReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CategoryReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CategoryView, error) {
	row, err := r.queries.GetCategoryByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get category", err)
	}
	return toCategoryView(row), nil
}

func (r *CategoryReadStore) List(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := r.queries.ListCategories(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	result := make([]*queries.CategoryView, len(rows))
	for i, row := range rows {
		result[i] = toCategoryView(row)
	}
	return result, nil
}

func toCategoryView(row dbq.Categories) *queries.CategoryView {
	return &queries.CategoryView{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IconClass:   row.IconClass,
	}
}
