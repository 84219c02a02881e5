package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pyamsoft/fridge/pkg/logger"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
	domainsvcs "github.com/pyamsoft/fridge/services/fridge/domain/services"
)

const scanPageSize = 500

// ItemInput carries the user-editable fields of an item. Update replaces all
// of them, so a nil CategoryID or ExpiresOn clears the field.
type ItemInput struct {
	Name       string
	Presence   string
	Count      int
	CategoryID *uuid.UUID
	ExpiresOn  *time.Time
}

// ItemFilter narrows a per-entry listing served from the cache.
type ItemFilter struct {
	Presence *models.Presence
	Showing  repositories.Showing
}

// ExpirationOverview is a household's expiration report together with the
// day and rules it was computed for.
type ExpirationOverview struct {
	Today time.Time
	Rules domainsvcs.ExpirationRules
	domainsvcs.ExpirationReport
}

// ItemService orchestrates item writes and reads.
// Event publishing is handled by the repository layer (outbox pattern).
// Per-entry lists are served from Redis when available.
type ItemService struct {
	items      repositories.ItemRepository
	categories repositories.CategoryRepository
	households repositories.HouseholdRepository
	entries    *EntryService
	settings   SettingsReader
	cache      ItemListCache
	log        logger.Logger
	now        func() time.Time
}

// NewItemService wires an ItemService. itemCache may be nil.
func NewItemService(
	items repositories.ItemRepository,
	categories repositories.CategoryRepository,
	households repositories.HouseholdRepository,
	entries *EntryService,
	settings SettingsReader,
	itemCache ItemListCache,
	log logger.Logger,
) *ItemService {
	return &ItemService{
		items:      items,
		categories: categories,
		households: households,
		entries:    entries,
		settings:   settings,
		cache:      itemCache,
		log:        log,
		now:        time.Now,
	}
}

// Create commits a new item. With a nil entryID the item lands in the
// household's default entry; otherwise the entry is created or committed as
// needed. Nothing is written when the input is invalid.
func (s *ItemService) Create(ctx context.Context, householdID uuid.UUID, entryID *uuid.UUID, in ItemInput) (*models.Item, error) {
	name, presence, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	var entry *models.Entry
	if entryID == nil {
		entry, err = s.entries.EnsureDefault(ctx, householdID)
	} else {
		entry, err = s.entries.Guarantee(ctx, householdID, *entryID)
	}
	if err != nil {
		return nil, err
	}

	item := models.NewItem(householdID, entry.ID, name, presence)
	return s.commit(ctx, item, name, presence, in)
}

// Update replaces the editable fields of an existing item and commits it.
func (s *ItemService) Update(ctx context.Context, householdID, id uuid.UUID, in ItemInput) (*models.Item, error) {
	name, presence, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.entries.Guarantee(ctx, householdID, item.EntryID); err != nil {
		return nil, err
	}
	return s.commit(ctx, item, name, presence, in)
}

func (s *ItemService) validate(ctx context.Context, in ItemInput) (models.Name, models.Presence, error) {
	name, err := parseName(in.Name)
	if err != nil {
		return "", "", err
	}
	presence, err := models.ParsePresence(in.Presence)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", fridgedomain.ErrInvalidPresence, err)
	}
	if in.Count < 0 {
		return "", "", fmt.Errorf("%w: count must not be negative", fridgedomain.ErrInvalidCount)
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return "", "", fmt.Errorf("get category: %w", err)
		}
	}
	return name, presence, nil
}

func (s *ItemService) commit(ctx context.Context, item *models.Item, name models.Name, presence models.Presence, in ItemInput) (*models.Item, error) {
	settings, err := s.settings.Get(ctx, item.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	now := s.now()
	item.Name = name
	item.SetPresence(presence, now)
	item.SetCount(in.Count, settings.ZeroCountConsumed, now)
	item.CategoryID = in.CategoryID
	item.SetExpiration(in.ExpiresOn)
	item.MakeReal()

	if err := domainsvcs.ValidateItemForCommit(item); err != nil {
		return nil, fmt.Errorf("%w: %w", fridgedomain.ErrInvalidName, err)
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.invalidate(ctx, item)
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, householdID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Consume marks the item eaten.
func (s *ItemService) Consume(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error) {
	now := s.now()
	return s.mutateReal(ctx, householdID, id, func(i *models.Item) { i.Consume(now) })
}

// Spoil marks the item gone bad.
func (s *ItemService) Spoil(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error) {
	now := s.now()
	return s.mutateReal(ctx, householdID, id, func(i *models.Item) { i.Spoil(now) })
}

// Restore clears both the consumed and spoiled marks.
func (s *ItemService) Restore(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error) {
	return s.mutateReal(ctx, householdID, id, func(i *models.Item) { i.Restore() })
}

// Delete hard-deletes a committed item. Placeholders return ErrItemNotReal.
func (s *ItemService) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	item, err := s.Get(ctx, householdID, id)
	if err != nil {
		return err
	}
	if !item.IsReal {
		return fridgedomain.ErrItemNotReal
	}
	if err := s.items.Delete(ctx, householdID, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.invalidate(ctx, item)
	return nil
}

func (s *ItemService) mutateReal(ctx context.Context, householdID, id uuid.UUID, fn func(*models.Item)) (*models.Item, error) {
	item, err := s.Get(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if !item.IsReal {
		return nil, fridgedomain.ErrItemNotReal
	}
	fn(item)
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	s.invalidate(ctx, item)
	return item, nil
}

// List returns a filtered page of the household's items plus the unpaged total.
func (s *ItemService) List(ctx context.Context, householdID uuid.UUID, q repositories.ItemQuery) ([]*models.Item, int, error) {
	items, total, err := s.items.Find(ctx, householdID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// ListForEntry returns the committed items of one entry using a read-through
// cache of the entry's full list:
//  1. Check Redis first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Warm the cache with the Postgres result.
//
// A reader that loaded from Postgres before a concurrent write can warm the
// cache after that write's invalidation and leave a stale list. The worker
// invalidates the entry again when the change event arrives, so such a list
// usually lives only until then and never past ItemListCacheTTL.
func (s *ItemService) ListForEntry(ctx context.Context, householdID, entryID uuid.UUID, f ItemFilter) ([]*models.Item, error) {
	if _, err := s.entries.Get(ctx, householdID, entryID); err != nil {
		return nil, err
	}

	all, err := s.entryItems(ctx, householdID, entryID)
	if err != nil {
		return nil, err
	}

	showing := f.Showing
	if showing == "" {
		showing = repositories.ShowingFresh
	}
	out := make([]*models.Item, 0, len(all))
	for _, item := range all {
		if f.Presence != nil && item.Presence != *f.Presence {
			continue
		}
		if !matchesShowing(item, showing) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ItemService) entryItems(ctx context.Context, householdID, entryID uuid.UUID) ([]*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, householdID, entryID)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item list cache read failed", "entry_id", entryID, "error", err)
		}
	}

	items, err := s.scan(ctx, householdID, repositories.ItemQuery{
		EntryID:  &entryID,
		Showing:  repositories.ShowingAll,
		OnlyReal: true,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, householdID, entryID, toCached(items)); err != nil {
			s.log.WarnContext(ctx, "item list cache write failed", "entry_id", entryID, "error", err)
		}
	}
	return items, nil
}

// Similar returns the live items named exactly like id with the other
// presence, and the live items sharing a word with its name.
func (s *ItemService) Similar(ctx context.Context, householdID, id uuid.UUID) (same, similar []*models.Item, err error) {
	target, err := s.Get(ctx, householdID, id)
	if err != nil {
		return nil, nil, err
	}
	live, err := s.scan(ctx, householdID, repositories.ItemQuery{Showing: repositories.ShowingFresh, OnlyReal: true})
	if err != nil {
		return nil, nil, err
	}
	return domainsvcs.SameNamedItems(live, target), domainsvcs.SimilarNamedItems(live, target), nil
}

// ExpirationReport classifies the household's live items as of today in the
// household's timezone, using its saved settings.
func (s *ItemService) ExpirationReport(ctx context.Context, householdID uuid.UUID) (*ExpirationOverview, error) {
	h, err := s.households.GetByID(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	settings, err := s.settings.Get(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	live, err := s.scan(ctx, householdID, repositories.ItemQuery{Showing: repositories.ShowingFresh, OnlyReal: true})
	if err != nil {
		return nil, err
	}

	rules := domainsvcs.ExpirationRules{
		SoonDays:       settings.ExpiringSoonDays,
		SameDayExpired: settings.SameDayExpired,
	}
	today := domainsvcs.Today(s.now(), h.Location())
	return &ExpirationOverview{
		Today:            today,
		Rules:            rules,
		ExpirationReport: domainsvcs.BuildReport(live, today, rules),
	}, nil
}

// scan pages through every item matching q.
func (s *ItemService) scan(ctx context.Context, householdID uuid.UUID, q repositories.ItemQuery) ([]*models.Item, error) {
	var out []*models.Item
	q.Limit = scanPageSize
	for q.Offset = 0; ; q.Offset += scanPageSize {
		page, total, err := s.items.Find(ctx, householdID, q)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		out = append(out, page...)
		if len(page) < scanPageSize || len(out) >= total {
			return out, nil
		}
	}
}

func (s *ItemService) invalidate(ctx context.Context, item *models.Item) {
	s.InvalidateEntry(ctx, item.HouseholdID, item.EntryID)
}

// InvalidateEntry drops the cached item list of an entry. Failures are logged.
func (s *ItemService) InvalidateEntry(ctx context.Context, householdID, entryID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, householdID, entryID); err != nil {
		s.log.WarnContext(ctx, "item list cache invalidate failed", "entry_id", entryID, "error", err)
	}
}

func matchesShowing(item *models.Item, showing repositories.Showing) bool {
	switch showing {
	case repositories.ShowingAll:
		return true
	case repositories.ShowingConsumed:
		return item.IsConsumed()
	case repositories.ShowingSpoiled:
		return item.IsSpoiled()
	default:
		return !item.IsArchived()
	}
}
