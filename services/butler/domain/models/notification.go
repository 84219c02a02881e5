package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is the rendered text of a reminder.
type Message struct {
	Title string
	Body  string
}

// Notification is one posted reminder in a household inbox.
type Notification struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Kind        Kind
	// EntryID is set for item reminders, which are posted per entry.
	EntryID     *uuid.UUID
	Title       string
	Body        string
	CreatedAt   time.Time
	ReadAt      *time.Time
	DismissedAt *time.Time
}

// NewNotification returns an unread notification created at now.
func NewNotification(householdID uuid.UUID, kind Kind, entryID *uuid.UUID, msg Message, now time.Time) *Notification {
	return &Notification{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Kind:        kind,
		EntryID:     entryID,
		Title:       msg.Title,
		Body:        msg.Body,
		CreatedAt:   now.UTC(),
	}
}

func (n *Notification) IsRead() bool { return n.ReadAt != nil }
