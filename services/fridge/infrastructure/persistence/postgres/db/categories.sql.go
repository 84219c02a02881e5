package db

import (
	"context"

	"github.com/google/uuid"
)

const insertCategory = `-- name: InsertCategory :execrows
INSERT INTO fridge_categories (id, name, thumbnail, is_default)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING
`

type InsertCategoryParams struct {
	ID        uuid.UUID
	Name      string
	Thumbnail string
	IsDefault bool
}

func (q *Queries) InsertCategory(ctx context.Context, arg InsertCategoryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertCategory,
		arg.ID,
		arg.Name,
		arg.Thumbnail,
		arg.IsDefault,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getCategory = `-- name: GetCategory :one
SELECT id, name, thumbnail, is_default FROM fridge_categories
WHERE id = $1
`

func (q *Queries) GetCategory(ctx context.Context, id uuid.UUID) (FridgeCategory, error) {
	row := q.db.QueryRowContext(ctx, getCategory, id)
	var i FridgeCategory
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Thumbnail,
		&i.IsDefault,
	)
	return i, err
}

const listCategoriesWithCounts = `-- name: ListCategoriesWithCounts :many
SELECT c.id, c.name, c.thumbnail, c.is_default,
       count(i.id) AS item_count
FROM fridge_categories c
LEFT JOIN fridge_items i
       ON i.category_id = c.id
      AND i.household_id = $1
      AND i.is_real
      AND i.consumed_at IS NULL
      AND i.spoiled_at IS NULL
GROUP BY c.id, c.name, c.thumbnail, c.is_default
ORDER BY c.name
`

type ListCategoriesWithCountsRow struct {
	ID        uuid.UUID
	Name      string
	Thumbnail string
	IsDefault bool
	ItemCount int64
}

func (q *Queries) ListCategoriesWithCounts(ctx context.Context, householdID uuid.UUID) ([]ListCategoriesWithCountsRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategoriesWithCounts, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCategoriesWithCountsRow
	for rows.Next() {
		var i ListCategoriesWithCountsRow
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Thumbnail,
			&i.IsDefault,
			&i.ItemCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
