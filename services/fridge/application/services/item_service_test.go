package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/pkg/preferences"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

type fixture struct {
	households *memHouseholds
	entries    *memEntries
	items      *memItems
	categories *memCategories
	cache      *memCache
	settings   preferences.Settings
	svc        *ItemService
	hh         *models.Household
	now        time.Time
}

func newFixture(t *testing.T, mutate ...func(*preferences.Settings)) *fixture {
	t.Helper()
	f := &fixture{
		households: newMemHouseholds(),
		entries:    newMemEntries(),
		items:      newMemItems(),
		categories: newMemCategories(models.NewDefaultCategory("Dairy", "dairy.png")),
		cache:      newMemCache(),
		settings:   preferences.Defaults(),
		now:        time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&f.settings)
	}

	hh, err := models.NewHousehold("Home", "UTC")
	require.NoError(t, err)
	require.NoError(t, f.households.Save(context.Background(), hh))
	f.hh = hh

	entrySvc := NewEntryService(f.entries)
	entrySvc.now = func() time.Time { return f.now }
	f.svc = NewItemService(f.items, f.categories, f.households, entrySvc,
		staticSettings(f.settings), f.cache, logger.Discard())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) create(t *testing.T, entryID *uuid.UUID, in ItemInput) *models.Item {
	t.Helper()
	item, err := f.svc.Create(context.Background(), f.hh.ID, entryID, in)
	require.NoError(t, err)
	return item
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestItemService_CreateRejectsBlankNameWithoutWriting(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.hh.ID, nil, ItemInput{Name: "   ", Presence: "HAVE", Count: 1})

	require.ErrorIs(t, err, fridgedomain.ErrInvalidName)
	assert.Empty(t, f.items.rows)
	assert.Empty(t, f.entries.rows, "no default entry may be created for a rejected item")
}

func TestItemService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	unknownCat := uuid.New()

	tests := []struct {
		name string
		in   ItemInput
		want error
	}{
		{"bad presence", ItemInput{Name: "Milk", Presence: "MAYBE"}, fridgedomain.ErrInvalidPresence},
		{"negative count", ItemInput{Name: "Milk", Presence: "HAVE", Count: -1}, fridgedomain.ErrInvalidCount},
		{"unknown category", ItemInput{Name: "Milk", Presence: "HAVE", CategoryID: &unknownCat}, fridgedomain.ErrCategoryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), f.hh.ID, nil, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.items.rows)
}

func TestItemService_CreateEnsuresDefaultEntry(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, nil, ItemInput{Name: "Milk", Presence: "HAVE", Count: 1})
	second := f.create(t, nil, ItemInput{Name: "Eggs", Presence: "NEED", Count: 12})

	require.Len(t, f.entries.rows, 1)
	entry := f.entries.rows[first.EntryID]
	require.NotNil(t, entry)
	assert.Equal(t, models.DefaultEntryName, entry.Name)
	assert.True(t, entry.IsReal)
	assert.Equal(t, first.EntryID, second.EntryID)
	assert.True(t, first.IsReal)
	assert.NotNil(t, first.PurchasedAt)
	assert.Nil(t, second.PurchasedAt)
}

func TestItemService_CreateGuaranteesNamedEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("missing entry is created real", func(t *testing.T) {
		id := uuid.New()
		f.create(t, &id, ItemInput{Name: "Jam", Presence: "HAVE", Count: 1})
		require.Contains(t, f.entries.rows, id)
		assert.True(t, f.entries.rows[id].IsReal)
	})

	t.Run("placeholder entry is committed", func(t *testing.T) {
		placeholder := models.NewEntry(f.hh.ID, "Cooler")
		require.NoError(t, f.entries.Save(ctx, placeholder))
		f.create(t, &placeholder.ID, ItemInput{Name: "Ice", Presence: "HAVE", Count: 1})
		assert.True(t, f.entries.rows[placeholder.ID].IsReal)
	})

	t.Run("archived entry rejects new items", func(t *testing.T) {
		archived := models.NewEntry(f.hh.ID, "Old")
		archived.MakeReal()
		archived.Archive(f.now)
		require.NoError(t, f.entries.Save(ctx, archived))
		_, err := f.svc.Create(ctx, f.hh.ID, &archived.ID, ItemInput{Name: "Ham", Presence: "HAVE", Count: 1})
		require.ErrorIs(t, err, fridgedomain.ErrEntryArchived)
	})
}

func TestItemService_UpdatePresenceAndCount(t *testing.T) {
	f := newFixture(t, func(s *preferences.Settings) { s.ZeroCountConsumed = true })
	ctx := context.Background()
	item := f.create(t, nil, ItemInput{Name: "Butter", Presence: "NEED", Count: 1})

	updated, err := f.svc.Update(ctx, f.hh.ID, item.ID, ItemInput{Name: "Butter", Presence: "HAVE", Count: 2, ExpiresOn: dayPtr(2024, time.June, 20)})
	require.NoError(t, err)
	require.NotNil(t, updated.PurchasedAt)
	assert.True(t, updated.PurchasedAt.Equal(f.now))
	assert.Equal(t, 2, updated.Count)
	assert.True(t, updated.HasExpiration())

	updated, err = f.svc.Update(ctx, f.hh.ID, item.ID, ItemInput{Name: "Butter", Presence: "HAVE", Count: 0})
	require.NoError(t, err)
	assert.True(t, updated.IsConsumed(), "zero count consumes when the setting is on")
	assert.False(t, updated.HasExpiration(), "a nil expiration clears it")

	updated, err = f.svc.Update(ctx, f.hh.ID, item.ID, ItemInput{Name: "Butter", Presence: "NEED", Count: 0})
	require.NoError(t, err)
	assert.Nil(t, updated.PurchasedAt)
}

func TestItemService_ZeroCountWithoutSettingStaysLive(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, nil, ItemInput{Name: "Salt", Presence: "HAVE", Count: 0})
	assert.False(t, item.IsConsumed())
}

func TestItemService_ConsumeSpoilRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.create(t, nil, ItemInput{Name: "Yogurt", Presence: "HAVE", Count: 1})

	got, err := f.svc.Consume(ctx, f.hh.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsConsumed())

	got, err = f.svc.Spoil(ctx, f.hh.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSpoiled())
	assert.False(t, got.IsConsumed())

	got, err = f.svc.Restore(ctx, f.hh.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, got.IsArchived())
}

func TestItemService_DeleteOnlyReal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	placeholder := models.NewItem(f.hh.ID, uuid.New(), "Draft", models.PresenceNeed)
	require.NoError(t, f.items.Save(ctx, placeholder))
	require.ErrorIs(t, f.svc.Delete(ctx, f.hh.ID, placeholder.ID), fridgedomain.ErrItemNotReal)

	item := f.create(t, nil, ItemInput{Name: "Cheese", Presence: "HAVE", Count: 1})
	require.NoError(t, f.svc.Delete(ctx, f.hh.ID, item.ID))
	assert.NotContains(t, f.items.rows, item.ID)

	require.ErrorIs(t, f.svc.Delete(ctx, f.hh.ID, item.ID), fridgedomain.ErrItemNotFound)
}

func TestItemService_ListForEntryReadsThroughCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.create(t, nil, ItemInput{Name: "Milk", Presence: "HAVE", Count: 1})
	f.create(t, nil, ItemInput{Name: "Bread", Presence: "NEED", Count: 1})
	entryID := milk.EntryID

	items, err := f.svc.ListForEntry(ctx, f.hh.ID, entryID, ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	findsAfterMiss := f.items.finds

	have := models.PresenceHave
	items, err = f.svc.ListForEntry(ctx, f.hh.ID, entryID, ItemFilter{Presence: &have})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, milk.ID, items[0].ID)
	assert.Equal(t, findsAfterMiss, f.items.finds, "second read must be served from cache")

	_, err = f.svc.Consume(ctx, f.hh.ID, milk.ID)
	require.NoError(t, err)
	items, err = f.svc.ListForEntry(ctx, f.hh.ID, entryID, ItemFilter{Showing: repositories.ShowingConsumed})
	require.NoError(t, err)
	require.Len(t, items, 1, "writes invalidate the cached list")
	assert.Greater(t, f.items.finds, findsAfterMiss)
}

func TestItemService_InvalidateEntryDropsLateStaleWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.create(t, nil, ItemInput{Name: "Milk", Presence: "HAVE", Count: 1})
	entryID := milk.EntryID

	_, err := f.svc.ListForEntry(ctx, f.hh.ID, entryID, ItemFilter{})
	require.NoError(t, err)
	stale, err := f.cache.Get(ctx, f.hh.ID, entryID)
	require.NoError(t, err)

	_, err = f.svc.Consume(ctx, f.hh.ID, milk.ID)
	require.NoError(t, err)
	// A slow reader warms the cache with the list it loaded before the consume.
	require.NoError(t, f.cache.Set(ctx, f.hh.ID, entryID, stale))

	consumed := ItemFilter{Showing: repositories.ShowingConsumed}
	items, err := f.svc.ListForEntry(ctx, f.hh.ID, entryID, consumed)
	require.NoError(t, err)
	assert.Empty(t, items, "stale list is served until the next invalidation")

	f.svc.InvalidateEntry(ctx, f.hh.ID, entryID)
	items, err = f.svc.ListForEntry(ctx, f.hh.ID, entryID, consumed)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, milk.ID, items[0].ID)
}

func TestItemService_ListForEntryUnknownEntry(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListForEntry(context.Background(), f.hh.ID, uuid.New(), ItemFilter{})
	require.ErrorIs(t, err, fridgedomain.ErrEntryNotFound)
}

func TestItemService_Similar(t *testing.T) {
	f := newFixture(t)
	target := f.create(t, nil, ItemInput{Name: "Oat Milk", Presence: "HAVE", Count: 1})
	need := f.create(t, nil, ItemInput{Name: "oat milk", Presence: "NEED", Count: 1})
	whole := f.create(t, nil, ItemInput{Name: "Whole Milk", Presence: "HAVE", Count: 1})
	f.create(t, nil, ItemInput{Name: "Cheddar", Presence: "HAVE", Count: 1})

	same, similar, err := f.svc.Similar(context.Background(), f.hh.ID, target.ID)
	require.NoError(t, err)
	require.Len(t, same, 1)
	assert.Equal(t, need.ID, same[0].ID)
	require.Len(t, similar, 1)
	assert.Equal(t, whole.ID, similar[0].ID)
}

func TestItemService_ExpirationReport(t *testing.T) {
	f := newFixture(t, func(s *preferences.Settings) { s.ExpiringSoonDays = 3 })

	expired := f.create(t, nil, ItemInput{Name: "Old Milk", Presence: "HAVE", Count: 1, ExpiresOn: dayPtr(2024, time.May, 31)})
	soon := f.create(t, nil, ItemInput{Name: "Yogurt", Presence: "HAVE", Count: 1, ExpiresOn: dayPtr(2024, time.June, 4)})
	fresh := f.create(t, nil, ItemInput{Name: "Jam", Presence: "HAVE", Count: 1, ExpiresOn: dayPtr(2024, time.June, 5)})
	needed := f.create(t, nil, ItemInput{Name: "Bread", Presence: "NEED", Count: 1})

	report, err := f.svc.ExpirationReport(context.Background(), f.hh.ID)
	require.NoError(t, err)
	assert.True(t, report.Today.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	require.Len(t, report.Expired, 1)
	assert.Equal(t, expired.ID, report.Expired[0].ID)
	require.Len(t, report.ExpiringSoon, 1)
	assert.Equal(t, soon.ID, report.ExpiringSoon[0].ID)
	require.Len(t, report.Fresh, 1)
	assert.Equal(t, fresh.ID, report.Fresh[0].ID)
	require.Len(t, report.Needed, 1)
	assert.Equal(t, needed.ID, report.Needed[0].ID)
}
