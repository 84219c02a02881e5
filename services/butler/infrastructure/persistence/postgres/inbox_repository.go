package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/services/butler/domain"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
	"github.com/pyamsoft/fridge/services/butler/domain/repositories"
	"github.com/pyamsoft/fridge/services/butler/infrastructure/persistence/postgres/db"
)

// InboxRepository stores posted reminders in PostgreSQL. It implements
// repositories.NotificationRepository and doubles as the inbox Notifier.
type InboxRepository struct {
	db  *database.Database
	now func() time.Time
}

func NewInboxRepository(database *database.Database) *InboxRepository {
	return &InboxRepository{db: database, now: time.Now}
}

func (r *InboxRepository) Insert(ctx context.Context, n *models.Notification) error {
	entryID := uuid.NullUUID{}
	if n.EntryID != nil {
		entryID = uuid.NullUUID{UUID: *n.EntryID, Valid: true}
	}
	err := db.New(r.db.DB()).InsertNotification(ctx, db.InsertNotificationParams{
		ID:          n.ID,
		HouseholdID: n.HouseholdID,
		Kind:        n.Kind.String(),
		EntryID:     entryID,
		Title:       n.Title,
		Body:        n.Body,
		CreatedAt:   n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *InboxRepository) Find(ctx context.Context, householdID uuid.UUID, q repositories.NotificationQuery) ([]*models.Notification, int, error) {
	queries := db.New(r.db.DB())
	rows, err := queries.ListNotifications(ctx, db.ListNotificationsParams{
		HouseholdID: householdID,
		UnreadOnly:  q.UnreadOnly,
		Limit:       int32(q.Limit),
		Offset:      int32(q.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query notifications: %w", err)
	}
	total, err := queries.CountNotifications(ctx, db.CountNotificationsParams{
		HouseholdID: householdID,
		UnreadOnly:  q.UnreadOnly,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	out := make([]*models.Notification, len(rows))
	for i, row := range rows {
		out[i] = rowToNotification(row)
	}
	return out, int(total), nil
}

func (r *InboxRepository) MarkRead(ctx context.Context, householdID, id uuid.UUID) (*models.Notification, error) {
	row, err := db.New(r.db.DB()).MarkNotificationRead(ctx, db.MarkNotificationReadParams{
		ID:          id,
		HouseholdID: householdID,
		ReadAt:      r.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return rowToNotification(row), nil
}

func (r *InboxRepository) Dismiss(ctx context.Context, householdID, id uuid.UUID) error {
	n, err := db.New(r.db.DB()).DismissNotification(ctx, db.DismissNotificationParams{
		ID:          id,
		HouseholdID: householdID,
		DismissedAt: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *InboxRepository) DismissKind(ctx context.Context, householdID uuid.UUID, kind models.Kind) (int, error) {
	n, err := db.New(r.db.DB()).DismissNotificationsByKind(ctx, db.DismissNotificationsByKindParams{
		HouseholdID: householdID,
		Kind:        kind.String(),
		DismissedAt: r.now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("dismiss %s notifications: %w", kind, err)
	}
	return int(n), nil
}

// Post stores n in the inbox.
func (r *InboxRepository) Post(ctx context.Context, n *models.Notification) error {
	return r.Insert(ctx, n)
}

// Cancel dismisses every open notification of kind.
func (r *InboxRepository) Cancel(ctx context.Context, householdID uuid.UUID, kind models.Kind) error {
	_, err := r.DismissKind(ctx, householdID, kind)
	return err
}

func rowToNotification(row db.ButlerNotification) *models.Notification {
	n := &models.Notification{
		ID:          row.ID,
		HouseholdID: row.HouseholdID,
		Kind:        models.Kind(row.Kind),
		Title:       row.Title,
		Body:        row.Body,
		CreatedAt:   row.CreatedAt,
	}
	if row.EntryID.Valid {
		id := row.EntryID.UUID
		n.EntryID = &id
	}
	if row.ReadAt.Valid {
		t := row.ReadAt.Time
		n.ReadAt = &t
	}
	if row.DismissedAt.Valid {
		t := row.DismissedAt.Time
		n.DismissedAt = &t
	}
	return n
}
