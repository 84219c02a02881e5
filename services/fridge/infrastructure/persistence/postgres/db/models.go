package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type FridgeHousehold struct {
	ID        uuid.UUID
	Name      string
	Timezone  string
	CreatedAt time.Time
}

type FridgeEntry struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	CreatedAt   time.Time
	ArchivedAt  sql.NullTime
	IsReal      bool
}

type FridgeItem struct {
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

type FridgeCategory struct {
	ID        uuid.UUID
	Name      string
	Thumbnail string
	IsDefault bool
}
