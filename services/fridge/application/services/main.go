package services

import (
	"github.com/pyamsoft/fridge/pkg/app"
	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/services/fridge/infrastructure/persistence/postgres"
	"github.com/pyamsoft/fridge/services/fridge/infrastructure/seed"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Household *HouseholdService
	Entry     *EntryService
	Item      *ItemService
	Category  *CategoryService
}

// New wires all fridge application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	households := postgres.NewHouseholdRepository(a.Db)
	entries := postgres.NewEntryRepository(a.Db, a.EventBus)
	items := postgres.NewItemRepository(a.Db, a.EventBus)
	categories := postgres.NewCategoryRepository(a.Db)

	var itemCache ItemListCache
	if a.Redis != nil {
		itemCache = cache.NewItemListCache(a.Redis)
	}

	entrySvc := NewEntryService(entries)
	return &Services{
		Household: NewHouseholdService(households),
		Entry:     entrySvc,
		Item:      NewItemService(items, categories, households, entrySvc, a.Preferences, itemCache, a.Logger),
		Category:  NewCategoryService(categories, items, a.Preferences, seed.DefaultCategories, a.Logger),
	}
}
