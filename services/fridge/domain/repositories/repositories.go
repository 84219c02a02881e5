package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// Showing filters items by lifecycle state.
type Showing string

const (
	ShowingFresh    Showing = "fresh"    // neither consumed nor spoiled
	ShowingConsumed Showing = "consumed" // consumed only
	ShowingSpoiled  Showing = "spoiled"  // spoiled only
	ShowingAll      Showing = "all"
)

// EntryQuery narrows entry listings.
type EntryQuery struct {
	QueryOpts
	IncludeArchived bool
	OnlyReal        bool
	Search          string
}

// ItemQuery narrows item listings. Zero values mean "no filter", except
// Showing which defaults to fresh.
type ItemQuery struct {
	QueryOpts
	EntryID    *uuid.UUID
	Presence   *models.Presence
	CategoryID *uuid.UUID
	Showing    Showing
	Search     string
	OnlyReal   bool
}

// HouseholdRepository persists households.
type HouseholdRepository interface {
	Save(ctx context.Context, h *models.Household) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error)
	// List returns every household; the worker schedules reminders per household.
	List(ctx context.Context) ([]*models.Household, error)
}

// EntryRepository is the persistence interface for entries.
// The domain layer owns this interface; infrastructure implements it.
type EntryRepository interface {
	// Save upserts the entry and publishes an EntryChangedEvent in the same transaction.
	Save(ctx context.Context, entry *models.Entry) error
	GetByID(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error)
	// FindByName returns the first real, non-archived entry with the given name.
	FindByName(ctx context.Context, householdID uuid.UUID, name models.Name) (*models.Entry, error)
	// Find returns a page of entries and the total count ignoring pagination.
	Find(ctx context.Context, householdID uuid.UUID, q EntryQuery) ([]*models.Entry, int, error)
	// Delete removes the entry and its items.
	Delete(ctx context.Context, householdID, id uuid.UUID) error
}

// ItemRepository is the persistence interface for items.
type ItemRepository interface {
	// Save upserts the item and publishes an ItemChangedEvent in the same transaction.
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error)
	// Find returns a page of items and the total count ignoring pagination.
	Find(ctx context.Context, householdID uuid.UUID, q ItemQuery) ([]*models.Item, int, error)
	Delete(ctx context.Context, householdID, id uuid.UUID) error
}

// CategoryRepository persists the category set.
type CategoryRepository interface {
	// InsertDefaults inserts categories, skipping ones that already exist.
	InsertDefaults(ctx context.Context, categories []*models.Category) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// ListWithCounts returns every category with the household's fresh item count.
	ListWithCounts(ctx context.Context, householdID uuid.UUID) ([]*models.CategoryWithCount, error)
}
