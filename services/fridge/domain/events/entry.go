package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicEntryChanged is the Watermill topic published on every entry write.
const TopicEntryChanged = "fridge.entry.changed"

// ChangeType says what happened to the row.
type ChangeType string

const (
	ChangeInsert    ChangeType = "insert"
	ChangeUpdate    ChangeType = "update"
	ChangeDelete    ChangeType = "delete"
	ChangeDeleteAll ChangeType = "delete_all"
)

// EntryChangedEvent is published after an entry is inserted, updated or deleted.
type EntryChangedEvent struct {
	EventID     uuid.UUID  `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int        `json:"version"`  // Schema version; increment on breaking changes
	Type        ChangeType `json:"type"`
	EntryID     uuid.UUID  `json:"entry_id"`
	HouseholdID uuid.UUID  `json:"household_id"`
	Name        string     `json:"name"`
	Archived    bool       `json:"archived"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
