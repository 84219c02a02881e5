package services

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/preferences"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
	fridgemodels "github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// Pantry is the butler's read-only view of a household's food.
type Pantry interface {
	Household(ctx context.Context, id uuid.UUID) (*fridgemodels.Household, error)
	// Entries returns the committed entries that are not archived.
	Entries(ctx context.Context, householdID uuid.UUID) ([]*fridgemodels.Entry, error)
	// Items returns the committed items of an entry that are neither consumed nor spoiled.
	Items(ctx context.Context, householdID, entryID uuid.UUID) ([]*fridgemodels.Item, error)
}

// SettingsStore holds household settings and the last-fired time per kind.
type SettingsStore interface {
	Get(ctx context.Context, householdID uuid.UUID) (preferences.Settings, error)
	Save(ctx context.Context, householdID uuid.UUID, settings preferences.Settings) error
	LastNotified(ctx context.Context, householdID uuid.UUID, kind string) (time.Time, error)
	MarkNotified(ctx context.Context, householdID uuid.UUID, kind string, t time.Time) error
	ClearNotified(ctx context.Context, householdID uuid.UUID) error
}

// Notifier delivers reminders to the household.
type Notifier interface {
	Post(ctx context.Context, n *models.Notification) error
	// Cancel withdraws open reminders of kind.
	Cancel(ctx context.Context, householdID uuid.UUID, kind models.Kind) error
}

// Executor runs one order to completion.
type Executor interface {
	Execute(ctx context.Context, order models.Order) error
}

// Scheduler runs orders now or periodically. Orders are keyed by Tag.
type Scheduler interface {
	// PlaceOrder runs order as soon as possible, replacing a pending order with the same tag.
	PlaceOrder(ctx context.Context, order models.Order) error
	// ScheduleOrder runs order every period, starting one period from now.
	ScheduleOrder(ctx context.Context, order models.Order, every time.Duration) error
	CancelOrder(ctx context.Context, tag string) error
	CancelAll(ctx context.Context) error
}

// Publisher sends messages on the event bus.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}
