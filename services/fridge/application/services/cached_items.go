package services

import (
	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

func toCached(items []*models.Item) []cache.CachedItem {
	out := make([]cache.CachedItem, len(items))
	for i, item := range items {
		out[i] = cache.CachedItem{
			ID:          item.ID,
			EntryID:     item.EntryID,
			HouseholdID: item.HouseholdID,
			Name:        item.Name.String(),
			CategoryID:  item.CategoryID,
			Presence:    item.Presence.String(),
			Count:       item.Count,
			CreatedAt:   item.CreatedAt,
			PurchasedAt: item.PurchasedAt,
			ExpiresAt:   item.ExpiresAt,
			ConsumedAt:  item.ConsumedAt,
			SpoiledAt:   item.SpoiledAt,
			IsReal:      item.IsReal,
		}
	}
	return out
}

func fromCached(cached []cache.CachedItem) []*models.Item {
	out := make([]*models.Item, len(cached))
	for i, c := range cached {
		out[i] = &models.Item{
			ID:          c.ID,
			EntryID:     c.EntryID,
			HouseholdID: c.HouseholdID,
			Name:        models.Name(c.Name),
			CategoryID:  c.CategoryID,
			Presence:    models.Presence(c.Presence),
			Count:       c.Count,
			CreatedAt:   c.CreatedAt,
			PurchasedAt: c.PurchasedAt,
			ExpiresAt:   c.ExpiresAt,
			ConsumedAt:  c.ConsumedAt,
			SpoiledAt:   c.SpoiledAt,
			IsReal:      c.IsReal,
		}
	}
	return out
}
