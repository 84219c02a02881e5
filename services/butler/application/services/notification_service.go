package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/butler/domain/models"
	"github.com/pyamsoft/fridge/services/butler/domain/repositories"
)

// NotificationService reads and updates the household inbox.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, householdID uuid.UUID, q repositories.NotificationQuery) ([]*models.Notification, int, error) {
	out, total, err := s.repo.Find(ctx, householdID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return out, total, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, householdID, id uuid.UUID) (*models.Notification, error) {
	n, err := s.repo.MarkRead(ctx, householdID, id)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) Dismiss(ctx context.Context, householdID, id uuid.UUID) error {
	if err := s.repo.Dismiss(ctx, householdID, id); err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	return nil
}
