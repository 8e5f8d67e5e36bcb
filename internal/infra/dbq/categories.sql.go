package dbq

import (
	"context"

	"github.com/google/uuid"
)

const createCategory = `-- name: CreateCategory :one
INSERT INTO categories (id, name, description, icon_class)
VALUES ($1, $2, $3, $4)
RETURNING id, name, description, icon_class, created_at`

type CreateCategoryParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	IconClass   string
}

func (q *Queries) CreateCategory(ctx context.Context, db DBTX, arg CreateCategoryParams) (Categories, error) {
	row := db.QueryRow(ctx, createCategory, arg.ID, arg.Name, arg.Description, arg.IconClass)
	var i Categories
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.IconClass, &i.CreatedAt)
	return i, err
}

const getCategoryByID = `-- name: GetCategoryByID :one
SELECT id, name, description, icon_class, created_at FROM categories WHERE id = $1`

func (q *Queries) GetCategoryByID(ctx context.Context, db DBTX, id uuid.UUID) (Categories, error) {
	row := db.QueryRow(ctx, getCategoryByID, id)
	var i Categories
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.IconClass, &i.CreatedAt)
	return i, err
}

const getCategoryByName = `-- name: GetCategoryByName :one
SELECT id, name, description, icon_class, created_at FROM categories WHERE name = $1`

func (q *Queries) GetCategoryByName(ctx context.Context, db DBTX, name string) (Categories, error) {
	row := db.QueryRow(ctx, getCategoryByName, name)
	var i Categories
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.IconClass, &i.CreatedAt)
	return i, err
}

const listCategories = `-- name: ListCategories :many
SELECT id, name, description, icon_class, created_at FROM categories ORDER BY name`

func (q *Queries) ListCategories(ctx context.Context, db DBTX) ([]Categories, error) {
	rows, err := db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Categories{}
	for rows.Next() {
		var i Categories
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.IconClass, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
