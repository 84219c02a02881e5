package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is one tracked food item inside an entry.
//
// ExpiresAt holds a calendar date normalized to midnight UTC; the time of day
// carries no meaning. An item is archived once it is consumed or spoiled.
type Item struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	HouseholdID uuid.UUID // tenant scope, always filter by this in queries
	Name        Name
	CategoryID  *uuid.UUID
	Presence    Presence
	Count       int
	CreatedAt   time.Time
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
	ConsumedAt  *time.Time
	SpoiledAt   *time.Time
	IsReal      bool
}

// NewItem returns a placeholder item with a count of one.
func NewItem(householdID, entryID uuid.UUID, name Name, presence Presence) *Item {
	now := time.Now().UTC()
	item := &Item{
		ID:          uuid.New(),
		EntryID:     entryID,
		HouseholdID: householdID,
		Name:        name,
		Presence:    presence,
		Count:       1,
		CreatedAt:   now,
	}
	if presence == PresenceHave {
		item.PurchasedAt = &now
	}
	return item
}

// IsConsumed reports whether the item was eaten.
func (i *Item) IsConsumed() bool { return i.ConsumedAt != nil }

// IsSpoiled reports whether the item went bad.
func (i *Item) IsSpoiled() bool { return i.SpoiledAt != nil }

// IsArchived reports whether the item left the fridge either way.
func (i *Item) IsArchived() bool { return i.IsConsumed() || i.IsSpoiled() }

// Consume marks the item eaten at now.
func (i *Item) Consume(now time.Time) {
	t := now.UTC()
	i.ConsumedAt = &t
	i.SpoiledAt = nil
}

// Spoil marks the item gone bad at now.
func (i *Item) Spoil(now time.Time) {
	t := now.UTC()
	i.SpoiledAt = &t
	i.ConsumedAt = nil
}

// Restore puts a consumed or spoiled item back into the fridge.
func (i *Item) Restore() {
	i.ConsumedAt = nil
	i.SpoiledAt = nil
}

// SetPresence switches presence. Moving to HAVE stamps the purchase time;
// moving to NEED clears it.
func (i *Item) SetPresence(p Presence, now time.Time) {
	if p == i.Presence {
		return
	}
	i.Presence = p
	if p == PresenceHave {
		t := now.UTC()
		i.PurchasedAt = &t
		return
	}
	i.PurchasedAt = nil
}

// SetCount updates the count. When zeroConsumes is set a count of zero or
// less also consumes the item.
func (i *Item) SetCount(n int, zeroConsumes bool, now time.Time) {
	if n < 0 {
		n = 0
	}
	i.Count = n
	if n == 0 && zeroConsumes && !i.IsArchived() {
		i.Consume(now)
	}
}

// SetExpiration stores the calendar date of d, or clears it when d is nil.
func (i *Item) SetExpiration(d *time.Time) {
	if d == nil {
		i.ExpiresAt = nil
		return
	}
	date := DateOf(*d)
	i.ExpiresAt = &date
}

// HasExpiration reports whether an expiration date is set.
func (i *Item) HasExpiration() bool { return i.ExpiresAt != nil }

// MakeReal marks the item as committed.
func (i *Item) MakeReal() {
	i.IsReal = true
}

// DateOf returns the calendar date of t (in t's own location) as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
