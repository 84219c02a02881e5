package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const upsertItem = `-- name: UpsertItem :one
INSERT INTO fridge_items (
    id, entry_id, household_id, name, category_id, presence, count,
    created_at, purchased_at, expires_at, consumed_at, spoiled_at, is_real
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
    entry_id     = EXCLUDED.entry_id,
    name         = EXCLUDED.name,
    category_id  = EXCLUDED.category_id,
    presence     = EXCLUDED.presence,
    count        = EXCLUDED.count,
    purchased_at = EXCLUDED.purchased_at,
    expires_at   = EXCLUDED.expires_at,
    consumed_at  = EXCLUDED.consumed_at,
    spoiled_at   = EXCLUDED.spoiled_at,
    is_real      = EXCLUDED.is_real
WHERE fridge_items.household_id = EXCLUDED.household_id
RETURNING (xmax = 0) AS inserted
`

type UpsertItemParams struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	CategoryID  uuid.NullUUID
	Presence    string
	Count       int32
	CreatedAt   time.Time
	PurchasedAt sql.NullTime
	ExpiresAt   sql.NullTime
	ConsumedAt  sql.NullTime
	SpoiledAt   sql.NullTime
	IsReal      bool
}

// UpsertItem reports true when the row was inserted rather than updated.
func (q *Queries) UpsertItem(ctx context.Context, arg UpsertItemParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, upsertItem,
		arg.ID,
		arg.EntryID,
		arg.HouseholdID,
		arg.Name,
		arg.CategoryID,
		arg.Presence,
		arg.Count,
		arg.CreatedAt,
		arg.PurchasedAt,
		arg.ExpiresAt,
		arg.ConsumedAt,
		arg.SpoiledAt,
		arg.IsReal,
	)
	var inserted bool
	err := row.Scan(&inserted)
	return inserted, err
}

const getItem = `-- name: GetItem :one
SELECT id, entry_id, household_id, name, category_id, presence, count,
       created_at, purchased_at, expires_at, consumed_at, spoiled_at, is_real
FROM fridge_items
WHERE id = $1 AND household_id = $2
`

type GetItemParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

func (q *Queries) GetItem(ctx context.Context, arg GetItemParams) (FridgeItem, error) {
	row := q.db.QueryRowContext(ctx, getItem, arg.ID, arg.HouseholdID)
	var i FridgeItem
	err := row.Scan(
		&i.ID,
		&i.EntryID,
		&i.HouseholdID,
		&i.Name,
		&i.CategoryID,
		&i.Presence,
		&i.Count,
		&i.CreatedAt,
		&i.PurchasedAt,
		&i.ExpiresAt,
		&i.ConsumedAt,
		&i.SpoiledAt,
		&i.IsReal,
	)
	return i, err
}

const itemFilter = `
WHERE household_id = $1
  AND ($2::uuid IS NULL OR entry_id = $2::uuid)
  AND ($3::text = '' OR presence = $3::text)
  AND ($4::uuid IS NULL OR category_id = $4::uuid)
  AND (
        $5::text = 'all'
     OR ($5::text = 'fresh'    AND consumed_at IS NULL AND spoiled_at IS NULL)
     OR ($5::text = 'consumed' AND consumed_at IS NOT NULL)
     OR ($5::text = 'spoiled'  AND spoiled_at IS NOT NULL)
  )
  AND ($6::text = '' OR name ILIKE '%' || $6::text || '%')
  AND (NOT $7::boolean OR is_real)
`

const listItems = `-- name: ListItems :many
SELECT id, entry_id, household_id, name, category_id, presence, count,
       created_at, purchased_at, expires_at, consumed_at, spoiled_at, is_real
FROM fridge_items` + itemFilter + `ORDER BY created_at, id
LIMIT $8 OFFSET $9
`

type ListItemsParams struct {
	HouseholdID uuid.UUID
	EntryID     uuid.NullUUID
	Presence    string
	CategoryID  uuid.NullUUID
	Showing     string
	Search      string
	OnlyReal    bool
	Limit       int32
	Offset      int32
}

func (q *Queries) ListItems(ctx context.Context, arg ListItemsParams) ([]FridgeItem, error) {
	rows, err := q.db.QueryContext(ctx, listItems,
		arg.HouseholdID,
		arg.EntryID,
		arg.Presence,
		arg.CategoryID,
		arg.Showing,
		arg.Search,
		arg.OnlyReal,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FridgeItem
	for rows.Next() {
		var i FridgeItem
		if err := rows.Scan(
			&i.ID,
			&i.EntryID,
			&i.HouseholdID,
			&i.Name,
			&i.CategoryID,
			&i.Presence,
			&i.Count,
			&i.CreatedAt,
			&i.PurchasedAt,
			&i.ExpiresAt,
			&i.ConsumedAt,
			&i.SpoiledAt,
			&i.IsReal,
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

const countItems = `-- name: CountItems :one
SELECT count(*) FROM fridge_items` + itemFilter

type CountItemsParams struct {
	HouseholdID uuid.UUID
	EntryID     uuid.NullUUID
	Presence    string
	CategoryID  uuid.NullUUID
	Showing     string
	Search      string
	OnlyReal    bool
}

func (q *Queries) CountItems(ctx context.Context, arg CountItemsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countItems,
		arg.HouseholdID,
		arg.EntryID,
		arg.Presence,
		arg.CategoryID,
		arg.Showing,
		arg.Search,
		arg.OnlyReal,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteItem = `-- name: DeleteItem :execrows
DELETE FROM fridge_items
WHERE id = $1 AND household_id = $2
`

type DeleteItemParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

func (q *Queries) DeleteItem(ctx context.Context, arg DeleteItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteItem, arg.ID, arg.HouseholdID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
