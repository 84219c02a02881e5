package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertHousehold = `-- name: InsertHousehold :exec
INSERT INTO fridge_households (id, name, timezone, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, timezone = EXCLUDED.timezone
`

type InsertHouseholdParams struct {
	ID        uuid.UUID
	Name      string
	Timezone  string
	CreatedAt time.Time
}

func (q *Queries) InsertHousehold(ctx context.Context, arg InsertHouseholdParams) error {
	_, err := q.db.ExecContext(ctx, insertHousehold,
		arg.ID,
		arg.Name,
		arg.Timezone,
		arg.CreatedAt,
	)
	return err
}

const getHousehold = `-- name: GetHousehold :one
SELECT id, name, timezone, created_at FROM fridge_households
WHERE id = $1
`

func (q *Queries) GetHousehold(ctx context.Context, id uuid.UUID) (FridgeHousehold, error) {
	row := q.db.QueryRowContext(ctx, getHousehold, id)
	var i FridgeHousehold
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Timezone,
		&i.CreatedAt,
	)
	return i, err
}

const listHouseholds = `-- name: ListHouseholds :many
SELECT id, name, timezone, created_at FROM fridge_households
ORDER BY created_at
`

func (q *Queries) ListHouseholds(ctx context.Context) ([]FridgeHousehold, error) {
	rows, err := q.db.QueryContext(ctx, listHouseholds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FridgeHousehold
	for rows.Next() {
		var i FridgeHousehold
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Timezone,
			&i.CreatedAt,
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
