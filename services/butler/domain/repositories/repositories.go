package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// NotificationQuery narrows inbox listings. Dismissed notifications are never listed.
type NotificationQuery struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

// NotificationRepository is the household notification inbox.
type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	Find(ctx context.Context, householdID uuid.UUID, q NotificationQuery) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, householdID, id uuid.UUID) (*models.Notification, error)
	Dismiss(ctx context.Context, householdID, id uuid.UUID) error
	// DismissKind dismisses every open notification of kind and reports how many changed.
	DismissKind(ctx context.Context, householdID uuid.UUID, kind models.Kind) (int, error)
}
