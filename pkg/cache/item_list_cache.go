package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemListCacheTTL bounds how long a stale list can survive a missed invalidation.
	ItemListCacheTTL = 10 * time.Minute

	itemListCacheKeyPrefix = "fridge:items"
)

// CachedItem is the denormalized read model of one fridge item.
type CachedItem struct {
	ID          uuid.UUID  `json:"id"`
	EntryID     uuid.UUID  `json:"entry_id"`
	HouseholdID uuid.UUID  `json:"household_id"`
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Presence    string     `json:"presence"`
	Count       int        `json:"count"`
	CreatedAt   time.Time  `json:"created_at"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ConsumedAt  *time.Time `json:"consumed_at,omitempty"`
	SpoiledAt   *time.Time `json:"spoiled_at,omitempty"`
	IsReal      bool       `json:"is_real"`
}

// ItemListCache caches the full item list of one entry as a JSON blob.
// Writers invalidate; readers fill on miss.
// Key format: "fridge:items:{householdID}:{entryID}"
type ItemListCache struct {
	client *RedisClient
}

// NewItemListCache creates a new ItemListCache backed by the given RedisClient.
func NewItemListCache(r *RedisClient) *ItemListCache {
	return &ItemListCache{client: r}
}

// Get returns the cached item list for an entry.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ItemListCache) Get(ctx context.Context, householdID, entryID uuid.UUID) ([]CachedItem, error) {
	raw, err := c.client.Client().Get(ctx, c.key(householdID, entryID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var items []CachedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return items, nil
}

// Set stores the item list for an entry with ItemListCacheTTL.
func (c *ItemListCache) Set(ctx context.Context, householdID, entryID uuid.UUID, items []CachedItem) error {
	if items == nil {
		items = []CachedItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(householdID, entryID), raw, ItemListCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list for one entry.
func (c *ItemListCache) Invalidate(ctx context.Context, householdID, entryID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(householdID, entryID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// key builds the Redis key: "fridge:items:{householdID}:{entryID}"
func (c *ItemListCache) key(householdID, entryID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", itemListCacheKeyPrefix, householdID, entryID)
}
