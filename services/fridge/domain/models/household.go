package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is used when a household does not name one.
const DefaultTimezone = "UTC"

// Household is the tenant every entry, item, store and notification belongs to.
// Its timezone decides what "today" and "10PM" mean for reminders.
type Household struct {
	ID        uuid.UUID
	Name      Name
	Timezone  string
	CreatedAt time.Time
}

// NewHousehold validates tz and returns a new household.
func NewHousehold(name Name, tz string) (*Household, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &Household{
		ID:        uuid.New(),
		Name:      name,
		Timezone:  tz,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Location returns the household's time zone, falling back to UTC when the
// stored name no longer resolves.
func (h *Household) Location() *time.Location {
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
