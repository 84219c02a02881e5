package services

import (
	"github.com/pyamsoft/fridge/pkg/app"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	"github.com/pyamsoft/fridge/services/locator/infrastructure/overpass"
	"github.com/pyamsoft/fridge/services/locator/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the locator context.
type Services struct {
	Locator *LocatorService
}

// New wires the locator. Location orders go out through the butler's order service.
func New(a *app.Application, butler *butlersvcs.Services) *Services {
	return &Services{
		Locator: NewLocatorService(
			postgres.NewPlaceRepository(a.Db),
			overpass.New(a.Config, a.Logger),
			a.Preferences,
			butler.Orders,
			a.Logger,
		),
	}
}
