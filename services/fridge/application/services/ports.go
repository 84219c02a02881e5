package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/preferences"
)

// SettingsReader loads a household's reminder and expiration settings.
type SettingsReader interface {
	Get(ctx context.Context, householdID uuid.UUID) (preferences.Settings, error)
}

// FlagStore guards one-shot deployment tasks such as category seeding.
type FlagStore interface {
	SetFlagOnce(ctx context.Context, name string) (bool, error)
	ClearFlag(ctx context.Context, name string) error
}

// ItemListCache is the per-entry read-through cache for item lists.
type ItemListCache interface {
	Get(ctx context.Context, householdID, entryID uuid.UUID) ([]cache.CachedItem, error)
	Set(ctx context.Context, householdID, entryID uuid.UUID, items []cache.CachedItem) error
	Invalidate(ctx context.Context, householdID, entryID uuid.UUID) error
}
