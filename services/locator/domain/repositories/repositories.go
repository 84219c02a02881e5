package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/locator/domain/models"
)

// PlaceRepository persists the stores and zones saved for each household.
type PlaceRepository interface {
	// Upsert saves stores and zones, overwriting any with the same OSM id.
	Upsert(ctx context.Context, householdID uuid.UUID, stores []models.Store, zones []models.Zone) error
	Stores(ctx context.Context, householdID uuid.UUID) ([]models.Store, error)
	Zones(ctx context.Context, householdID uuid.UUID) ([]models.Zone, error)
	DeleteStore(ctx context.Context, householdID uuid.UUID, id int64) error
	DeleteZone(ctx context.Context, householdID uuid.UUID, id int64) error
}
