package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const insertNotification = `-- name: InsertNotification :exec
INSERT INTO butler_notifications (id, household_id, kind, entry_id, title, body, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertNotificationParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Kind        string
	EntryID     uuid.NullUUID
	Title       string
	Body        string
	CreatedAt   time.Time
}

func (q *Queries) InsertNotification(ctx context.Context, arg InsertNotificationParams) error {
	_, err := q.db.ExecContext(ctx, insertNotification,
		arg.ID,
		arg.HouseholdID,
		arg.Kind,
		arg.EntryID,
		arg.Title,
		arg.Body,
		arg.CreatedAt,
	)
	return err
}

const listNotifications = `-- name: ListNotifications :many
SELECT id, household_id, kind, entry_id, title, body, created_at, read_at, dismissed_at
FROM butler_notifications
WHERE household_id = $1
  AND dismissed_at IS NULL
  AND (NOT $2::boolean OR read_at IS NULL)
ORDER BY created_at DESC, id
LIMIT $3 OFFSET $4
`

type ListNotificationsParams struct {
	HouseholdID uuid.UUID
	UnreadOnly  bool
	Limit       int32
	Offset      int32
}

func (q *Queries) ListNotifications(ctx context.Context, arg ListNotificationsParams) ([]ButlerNotification, error) {
	rows, err := q.db.QueryContext(ctx, listNotifications,
		arg.HouseholdID,
		arg.UnreadOnly,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ButlerNotification
	for rows.Next() {
		var i ButlerNotification
		if err := rows.Scan(
			&i.ID,
			&i.HouseholdID,
			&i.Kind,
			&i.EntryID,
			&i.Title,
			&i.Body,
			&i.CreatedAt,
			&i.ReadAt,
			&i.DismissedAt,
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

const countNotifications = `-- name: CountNotifications :one
SELECT count(*) FROM butler_notifications
WHERE household_id = $1
  AND dismissed_at IS NULL
  AND (NOT $2::boolean OR read_at IS NULL)
`

type CountNotificationsParams struct {
	HouseholdID uuid.UUID
	UnreadOnly  bool
}

func (q *Queries) CountNotifications(ctx context.Context, arg CountNotificationsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countNotifications, arg.HouseholdID, arg.UnreadOnly)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const markNotificationRead = `-- name: MarkNotificationRead :one
UPDATE butler_notifications
SET read_at = COALESCE(read_at, $3)
WHERE id = $1 AND household_id = $2 AND dismissed_at IS NULL
RETURNING id, household_id, kind, entry_id, title, body, created_at, read_at, dismissed_at
`

type MarkNotificationReadParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	ReadAt      time.Time
}

func (q *Queries) MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) (ButlerNotification, error) {
	row := q.db.QueryRowContext(ctx, markNotificationRead, arg.ID, arg.HouseholdID, arg.ReadAt)
	var i ButlerNotification
	err := row.Scan(
		&i.ID,
		&i.HouseholdID,
		&i.Kind,
		&i.EntryID,
		&i.Title,
		&i.Body,
		&i.CreatedAt,
		&i.ReadAt,
		&i.DismissedAt,
	)
	return i, err
}

const dismissNotification = `-- name: DismissNotification :execrows
UPDATE butler_notifications
SET dismissed_at = $3
WHERE id = $1 AND household_id = $2 AND dismissed_at IS NULL
`

type DismissNotificationParams struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	DismissedAt time.Time
}

func (q *Queries) DismissNotification(ctx context.Context, arg DismissNotificationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, dismissNotification, arg.ID, arg.HouseholdID, arg.DismissedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const dismissNotificationsByKind = `-- name: DismissNotificationsByKind :execrows
UPDATE butler_notifications
SET dismissed_at = $3
WHERE household_id = $1 AND kind = $2 AND dismissed_at IS NULL
`

type DismissNotificationsByKindParams struct {
	HouseholdID uuid.UUID
	Kind        string
	DismissedAt time.Time
}

func (q *Queries) DismissNotificationsByKind(ctx context.Context, arg DismissNotificationsByKindParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, dismissNotificationsByKind, arg.HouseholdID, arg.Kind, arg.DismissedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
