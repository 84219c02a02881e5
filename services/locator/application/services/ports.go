package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/preferences"
	butlermodels "github.com/pyamsoft/fridge/services/butler/domain/models"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
	domainsvcs "github.com/pyamsoft/fridge/services/locator/domain/services"
)

// MapSource looks up supermarkets inside a bounding box.
type MapSource interface {
	Supermarkets(ctx context.Context, box models.BoundingBox) ([]domainsvcs.Element, error)
}

// SettingsReader exposes the household's nearby range.
type SettingsReader interface {
	Get(ctx context.Context, householdID uuid.UUID) (preferences.Settings, error)
}

// OrderPlacer hands location orders to the butler.
type OrderPlacer interface {
	Place(ctx context.Context, order butlermodels.Order) error
}
