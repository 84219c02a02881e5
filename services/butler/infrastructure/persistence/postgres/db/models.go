package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ButlerNotification struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Kind        string
	EntryID     uuid.NullUUID
	Title       string
	Body        string
	CreatedAt   time.Time
	ReadAt      sql.NullTime
	DismissedAt sql.NullTime
}
