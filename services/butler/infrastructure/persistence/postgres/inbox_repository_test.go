package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/services/butler/domain"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
	"github.com/pyamsoft/fridge/services/butler/domain/repositories"
)

var notificationColumns = []string{
	"id", "household_id", "kind", "entry_id", "title", "body", "created_at", "read_at", "dismissed_at",
}

func newInbox(t *testing.T) (*InboxRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	repo := NewInboxRepository(database.New(sqlDB))
	repo.now = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

func TestInboxRepository_Post(t *testing.T) {
	repo, mock := newInbox(t)
	entryID := uuid.New()
	n := models.NewNotification(uuid.New(), models.KindExpired, &entryID,
		models.Message{Title: "Expiration warning for Fridge", Body: "2 items have passed expiration!"}, time.Now())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO butler_notifications")).
		WithArgs(n.ID, n.HouseholdID, "expired", uuid.NullUUID{UUID: entryID, Valid: true}, n.Title, n.Body, n.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Post(context.Background(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxRepository_FindUnread(t *testing.T) {
	repo, mock := newInbox(t)
	hh := uuid.New()
	created := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM butler_notifications")).
		WithArgs(hh, true, int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(uuid.NewString(), hh.String(), "nightly", nil, "Nightly fridge cleanup", "3 items", created, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM butler_notifications")).
		WithArgs(hh, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	out, total, err := repo.Find(context.Background(), hh, repositories.NotificationQuery{Limit: 20, UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, out, 1)
	assert.Equal(t, models.KindNightly, out[0].Kind)
	assert.Nil(t, out[0].EntryID)
	assert.False(t, out[0].IsRead())
}

func TestInboxRepository_MarkReadMissing(t *testing.T) {
	repo, mock := newInbox(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE butler_notifications")).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	_, err := repo.MarkRead(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestInboxRepository_Dismiss(t *testing.T) {
	repo, mock := newInbox(t)
	hh, id := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("SET dismissed_at = $3")).
		WithArgs(id, hh, repo.now().UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET dismissed_at = $3")).
		WithArgs(id, hh, repo.now().UTC()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Dismiss(context.Background(), hh, id))
	require.ErrorIs(t, repo.Dismiss(context.Background(), hh, id), domain.ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInboxRepository_CancelDismissesKind(t *testing.T) {
	repo, mock := newInbox(t)
	hh := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("WHERE household_id = $1 AND kind = $2")).
		WithArgs(hh, "nearby", repo.now().UTC()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Cancel(context.Background(), hh, models.KindNearby))
	assert.NoError(t, mock.ExpectationsWereMet())
}
