package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/preferences"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

type memHouseholds struct {
	rows map[uuid.UUID]*models.Household
}

func newMemHouseholds() *memHouseholds {
	return &memHouseholds{rows: map[uuid.UUID]*models.Household{}}
}

func (m *memHouseholds) Save(_ context.Context, h *models.Household) error {
	cp := *h
	m.rows[h.ID] = &cp
	return nil
}

func (m *memHouseholds) GetByID(_ context.Context, id uuid.UUID) (*models.Household, error) {
	h, ok := m.rows[id]
	if !ok {
		return nil, fridgedomain.ErrHouseholdNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memHouseholds) List(context.Context) ([]*models.Household, error) {
	var out []*models.Household
	for _, h := range m.rows {
		out = append(out, h)
	}
	return out, nil
}

type memEntries struct {
	rows  map[uuid.UUID]*models.Entry
	saves int
}

func newMemEntries() *memEntries {
	return &memEntries{rows: map[uuid.UUID]*models.Entry{}}
}

func (m *memEntries) Save(_ context.Context, e *models.Entry) error {
	if existing, ok := m.rows[e.ID]; ok && existing.HouseholdID != e.HouseholdID {
		return fridgedomain.ErrEntryNotFound
	}
	cp := *e
	m.rows[e.ID] = &cp
	m.saves++
	return nil
}

func (m *memEntries) GetByID(_ context.Context, hh, id uuid.UUID) (*models.Entry, error) {
	e, ok := m.rows[id]
	if !ok || e.HouseholdID != hh {
		return nil, fridgedomain.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEntries) FindByName(_ context.Context, hh uuid.UUID, name models.Name) (*models.Entry, error) {
	for _, e := range m.rows {
		if e.HouseholdID == hh && e.IsReal && !e.IsArchived() && e.Name.EqualFold(name) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fridgedomain.ErrEntryNotFound
}

func (m *memEntries) Find(_ context.Context, hh uuid.UUID, q repositories.EntryQuery) ([]*models.Entry, int, error) {
	var out []*models.Entry
	for _, e := range m.rows {
		if e.HouseholdID == hh && (q.IncludeArchived || !e.IsArchived()) && (!q.OnlyReal || e.IsReal) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memEntries) Delete(_ context.Context, hh, id uuid.UUID) error {
	e, ok := m.rows[id]
	if !ok || e.HouseholdID != hh {
		return fridgedomain.ErrEntryNotFound
	}
	delete(m.rows, id)
	return nil
}

type memItems struct {
	rows  map[uuid.UUID]*models.Item
	finds int
}

func newMemItems() *memItems {
	return &memItems{rows: map[uuid.UUID]*models.Item{}}
}

func (m *memItems) Save(_ context.Context, i *models.Item) error {
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memItems) GetByID(_ context.Context, hh, id uuid.UUID) (*models.Item, error) {
	i, ok := m.rows[id]
	if !ok || i.HouseholdID != hh {
		return nil, fridgedomain.ErrItemNotFound
	}
	cp := *i
	return &cp, nil
}

func (m *memItems) Find(_ context.Context, hh uuid.UUID, q repositories.ItemQuery) ([]*models.Item, int, error) {
	m.finds++
	showing := q.Showing
	if showing == "" {
		showing = repositories.ShowingFresh
	}
	var all []*models.Item
	for _, i := range m.rows {
		switch {
		case i.HouseholdID != hh,
			q.EntryID != nil && i.EntryID != *q.EntryID,
			q.Presence != nil && i.Presence != *q.Presence,
			q.CategoryID != nil && (i.CategoryID == nil || *i.CategoryID != *q.CategoryID),
			q.OnlyReal && !i.IsReal,
			q.Search != "" && !strings.Contains(strings.ToLower(i.Name.String()), strings.ToLower(q.Search)),
			!matchesShowing(i, showing):
			continue
		}
		cp := *i
		all = append(all, &cp)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].Name < all[b].Name })
	total := len(all)
	if q.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[q.Offset:]
	if q.Limit > 0 && len(all) > q.Limit {
		all = all[:q.Limit]
	}
	return all, total, nil
}

func (m *memItems) Delete(_ context.Context, hh, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return fridgedomain.ErrItemNotFound
	}
	delete(m.rows, id)
	return nil
}

type memCategories struct {
	rows      map[uuid.UUID]*models.Category
	insertErr error
}

func newMemCategories(cats ...*models.Category) *memCategories {
	m := &memCategories{rows: map[uuid.UUID]*models.Category{}}
	for _, c := range cats {
		m.rows[c.ID] = c
	}
	return m
}

func (m *memCategories) InsertDefaults(_ context.Context, cats []*models.Category) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	n := 0
	for _, c := range cats {
		if _, ok := m.rows[c.ID]; !ok {
			m.rows[c.ID] = c
			n++
		}
	}
	return n, nil
}

func (m *memCategories) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, fridgedomain.ErrCategoryNotFound
	}
	return c, nil
}

func (m *memCategories) ListWithCounts(context.Context, uuid.UUID) ([]*models.CategoryWithCount, error) {
	var out []*models.CategoryWithCount
	for _, c := range m.rows {
		out = append(out, &models.CategoryWithCount{Category: *c})
	}
	return out, nil
}

type staticSettings preferences.Settings

func (s staticSettings) Get(context.Context, uuid.UUID) (preferences.Settings, error) {
	return preferences.Settings(s), nil
}

type memFlags struct {
	mu  sync.Mutex
	set map[string]bool
}

func (f *memFlags) SetFlagOnce(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set == nil {
		f.set = map[string]bool{}
	}
	if f.set[name] {
		return false, nil
	}
	f.set[name] = true
	return true, nil
}

func (f *memFlags) ClearFlag(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.set, name)
	return nil
}

type memCache struct {
	lists       map[string][]cache.CachedItem
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{lists: map[string][]cache.CachedItem{}}
}

func (c *memCache) Get(_ context.Context, hh, entry uuid.UUID) ([]cache.CachedItem, error) {
	items, ok := c.lists[hh.String()+entry.String()]
	if !ok {
		return nil, redis.Nil
	}
	return items, nil
}

func (c *memCache) Set(_ context.Context, hh, entry uuid.UUID, items []cache.CachedItem) error {
	c.lists[hh.String()+entry.String()] = items
	return nil
}

func (c *memCache) Invalidate(_ context.Context, hh, entry uuid.UUID) error {
	delete(c.lists, hh.String()+entry.String())
	c.invalidated++
	return nil
}
