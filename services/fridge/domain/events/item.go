package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemChanged is the Watermill topic published on every item write.
// The worker invalidates the item list cache and re-runs the butler on it.
const TopicItemChanged = "fridge.item.changed"

// ItemChangedEvent is published after an item is inserted, updated or deleted.
type ItemChangedEvent struct {
	EventID     uuid.UUID  `json:"event_id"`
	Version     int        `json:"version"`
	Type        ChangeType `json:"type"`
	ItemID      uuid.UUID  `json:"item_id"`
	EntryID     uuid.UUID  `json:"entry_id"`
	HouseholdID uuid.UUID  `json:"household_id"`
	Name        string     `json:"name"`
	Presence    string     `json:"presence"`
	Archived    bool       `json:"archived"`
	OccurredAt  time.Time  `json:"occurred_at"`
}
