package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEntryName names the entry created on demand when an item is
// committed into a household with no entry yet.
const DefaultEntryName Name = "My Fridge"

// Entry groups items, e.g. one physical fridge or one shopping list.
// A placeholder entry (IsReal=false) exists while the user is still editing.
type Entry struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        Name
	CreatedAt   time.Time
	ArchivedAt  *time.Time
	IsReal      bool
}

// NewEntry returns a placeholder entry with a generated ID.
func NewEntry(householdID uuid.UUID, name Name) *Entry {
	return &Entry{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsArchived reports whether the entry was soft-deleted.
func (e *Entry) IsArchived() bool {
	return e.ArchivedAt != nil
}

// Archive soft-deletes the entry at now.
func (e *Entry) Archive(now time.Time) {
	t := now.UTC()
	e.ArchivedAt = &t
}

// Unarchive clears the archive mark.
func (e *Entry) Unarchive() {
	e.ArchivedAt = nil
}

// Rename replaces the entry name.
func (e *Entry) Rename(name Name) {
	e.Name = name
}

// MakeReal marks the entry as committed.
func (e *Entry) MakeReal() {
	e.IsReal = true
}
