package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/database"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

var (
	entryColumns = []string{"id", "household_id", "name", "created_at", "archived_at", "is_real"}
	itemColumns  = []string{
		"id", "entry_id", "household_id", "name", "category_id", "presence", "count",
		"created_at", "purchased_at", "expires_at", "consumed_at", "spoiled_at", "is_real",
	}
)

func newMockDB(t *testing.T) (*database.Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.New(db), mock
}

func TestEntryRepository_SaveInserts(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)
	entry := models.NewEntry(uuid.New(), "Garage Fridge")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fridge_entries")).
		WithArgs(entry.ID, entry.HouseholdID, "Garage Fridge", sqlmock.AnyArg(), sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))
	mock.ExpectCommit()

	require.NoError(t, repo.Save(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_SaveDuplicateName(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fridge_entries")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Save(context.Background(), models.NewEntry(uuid.New(), "Fridge"))
	require.ErrorIs(t, err, fridgedomain.ErrEntryAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_GetByID(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)
	hh, id := uuid.New(), uuid.New()
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_entries")).
		WithArgs(id, hh).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(id.String(), hh.String(), "Fridge", created, nil, true))

	entry, err := repo.GetByID(context.Background(), hh, id)
	require.NoError(t, err)
	assert.Equal(t, models.Name("Fridge"), entry.Name)
	assert.True(t, entry.IsReal)
	assert.False(t, entry.IsArchived())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_GetByIDNotFound(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_entries")).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, fridgedomain.ErrEntryNotFound)
}

func TestEntryRepository_Find(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)
	hh := uuid.New()
	archived := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_entries")).
		WithArgs(hh, true, false, "fri", int32(10), int32(0)).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow(uuid.NewString(), hh.String(), "Fridge", archived, archived, true).
			AddRow(uuid.NewString(), hh.String(), "Freezer fridge", archived, nil, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM fridge_entries")).
		WithArgs(hh, true, false, "fri").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	entries, total, err := repo.Find(context.Background(), hh, repositories.EntryQuery{
		QueryOpts:       repositories.QueryOpts{Limit: 10},
		IncludeArchived: true,
		Search:          "fri",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsArchived())
	assert.False(t, entries[1].IsArchived())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_DeleteMissing(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewEntryRepository(d, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fridge_entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, fridgedomain.ErrEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_GetByIDMapsNullables(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewItemRepository(d, nil)
	hh, entry, id, cat := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	expires := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_items")).
		WithArgs(id, hh).
		WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(
			id.String(), entry.String(), hh.String(), "Milk", cat.String(), "HAVE", int64(2),
			created, created, expires, nil, nil, true,
		))

	item, err := repo.GetByID(context.Background(), hh, id)
	require.NoError(t, err)
	assert.Equal(t, models.PresenceHave, item.Presence)
	assert.Equal(t, 2, item.Count)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, cat, *item.CategoryID)
	require.NotNil(t, item.ExpiresAt)
	assert.True(t, item.ExpiresAt.Equal(expires))
	assert.Nil(t, item.ConsumedAt)
	assert.False(t, item.IsArchived())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_SaveUnknownEntry(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewItemRepository(d, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fridge_items")).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fridge_items_entry_id_fkey"})
	mock.ExpectRollback()

	item := models.NewItem(uuid.New(), uuid.New(), "Milk", models.PresenceNeed)
	err := repo.Save(context.Background(), item)
	require.ErrorIs(t, err, fridgedomain.ErrEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_FindDefaultsToFresh(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewItemRepository(d, nil)
	hh := uuid.New()
	have := models.PresenceHave

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_items")).
		WithArgs(hh, uuid.NullUUID{}, "HAVE", uuid.NullUUID{}, "fresh", "", true, int32(50), int32(0)).
		WillReturnRows(sqlmock.NewRows(itemColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM fridge_items")).
		WithArgs(hh, uuid.NullUUID{}, "HAVE", uuid.NullUUID{}, "fresh", "", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	items, total, err := repo.Find(context.Background(), hh, repositories.ItemQuery{
		QueryOpts: repositories.QueryOpts{Limit: 50},
		Presence:  &have,
		OnlyReal:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_DeleteMissing(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewItemRepository(d, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_items")).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, fridgedomain.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_InsertDefaultsCountsNewRows(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewCategoryRepository(d)
	cats := []*models.Category{
		models.NewDefaultCategory("Dairy", "dairy.png"),
		models.NewDefaultCategory("Produce", "produce.png"),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fridge_categories")).
		WithArgs(cats[0].ID, "Dairy", "dairy.png", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fridge_categories")).
		WithArgs(cats[1].ID, "Produce", "produce.png", true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.InsertDefaults(context.Background(), cats)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListWithCounts(t *testing.T) {
	d, mock := newMockDB(t)
	repo := NewCategoryRepository(d)
	hh := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM fridge_categories c")).
		WithArgs(hh).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "thumbnail", "is_default", "item_count"}).
			AddRow(uuid.NewString(), "Dairy", "dairy.png", true, int64(3)))

	cats, err := repo.ListWithCounts(context.Background(), hh)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 3, cats[0].ItemCount)
	assert.Equal(t, models.Name("Dairy"), cats[0].Name)
}
