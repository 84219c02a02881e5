package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const upsertEntry = `-- name: UpsertEntry :one
INSERT INTO fridge_entries (id, household_id, name, created_at, archived_at, is_real)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    name        = EXCLUDED.name,
    archived_at = EXCLUDED.archived_at,
    is_real     = EXCLUDED.is_real
WHERE fridge_entries.household_id = EXCLUDED.household_id
RETURNING (xmax = 0) AS inserted
`

type UpsertEntryParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	CreatedAt   time.Time
	ArchivedAt  sql.NullTime
	IsReal      bool
}

// UpsertEntry reports true when the row was inserted rather than updated.
func (q *Queries) UpsertEntry(ctx context.Context, arg UpsertEntryParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, upsertEntry,
		arg.ID,
		arg.HouseholdID,
		arg.Name,
		arg.CreatedAt,
		arg.ArchivedAt,
		arg.IsReal,
	)
	var inserted bool
	err := row.Scan(&inserted)
	return inserted, err
}

const getEntry = `-- name: GetEntry :one
SELECT id, household_id, name, created_at, archived_at, is_real FROM fridge_entries
WHERE id = $1 AND household_id = $2
`

type GetEntryParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

func (q *Queries) GetEntry(ctx context.Context, arg GetEntryParams) (FridgeEntry, error) {
	row := q.db.QueryRowContext(ctx, getEntry, arg.ID, arg.HouseholdID)
	var i FridgeEntry
	err := row.Scan(
		&i.ID,
		&i.HouseholdID,
		&i.Name,
		&i.CreatedAt,
		&i.ArchivedAt,
		&i.IsReal,
	)
	return i, err
}

const findEntryByName = `-- name: FindEntryByName :one
SELECT id, household_id, name, created_at, archived_at, is_real FROM fridge_entries
WHERE household_id = $1
  AND lower(name) = lower($2)
  AND is_real
  AND archived_at IS NULL
ORDER BY created_at
LIMIT 1
`

type FindEntryByNameParams struct {
	HouseholdID uuid.UUID
	Name        string
}

func (q *Queries) FindEntryByName(ctx context.Context, arg FindEntryByNameParams) (FridgeEntry, error) {
	row := q.db.QueryRowContext(ctx, findEntryByName, arg.HouseholdID, arg.Name)
	var i FridgeEntry
	err := row.Scan(
		&i.ID,
		&i.HouseholdID,
		&i.Name,
		&i.CreatedAt,
		&i.ArchivedAt,
		&i.IsReal,
	)
	return i, err
}

const listEntries = `-- name: ListEntries :many
SELECT id, household_id, name, created_at, archived_at, is_real FROM fridge_entries
WHERE household_id = $1
  AND ($2::boolean OR archived_at IS NULL)
  AND (NOT $3::boolean OR is_real)
  AND ($4::text = '' OR name ILIKE '%' || $4::text || '%')
ORDER BY created_at DESC, id
LIMIT $5 OFFSET $6
`

type ListEntriesParams struct {
	HouseholdID     uuid.UUID
	IncludeArchived bool
	OnlyReal        bool
	Search          string
	Limit           int32
	Offset          int32
}

func (q *Queries) ListEntries(ctx context.Context, arg ListEntriesParams) ([]FridgeEntry, error) {
	rows, err := q.db.QueryContext(ctx, listEntries,
		arg.HouseholdID,
		arg.IncludeArchived,
		arg.OnlyReal,
		arg.Search,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FridgeEntry
	for rows.Next() {
		var i FridgeEntry
		if err := rows.Scan(
			&i.ID,
			&i.HouseholdID,
			&i.Name,
			&i.CreatedAt,
			&i.ArchivedAt,
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

const countEntries = `-- name: CountEntries :one
SELECT count(*) FROM fridge_entries
WHERE household_id = $1
  AND ($2::boolean OR archived_at IS NULL)
  AND (NOT $3::boolean OR is_real)
  AND ($4::text = '' OR name ILIKE '%' || $4::text || '%')
`

type CountEntriesParams struct {
	HouseholdID     uuid.UUID
	IncludeArchived bool
	OnlyReal        bool
	Search          string
}

func (q *Queries) CountEntries(ctx context.Context, arg CountEntriesParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEntries,
		arg.HouseholdID,
		arg.IncludeArchived,
		arg.OnlyReal,
		arg.Search,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteEntry = `-- name: DeleteEntry :execrows
DELETE FROM fridge_entries
WHERE id = $1 AND household_id = $2
`

type DeleteEntryParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
}

func (q *Queries) DeleteEntry(ctx context.Context, arg DeleteEntryParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteEntry, arg.ID, arg.HouseholdID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
