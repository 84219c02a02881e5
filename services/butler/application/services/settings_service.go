package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/preferences"
)

// SettingsService reads and writes household reminder settings.
type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context, householdID uuid.UUID) (preferences.Settings, error) {
	settings, err := s.store.Get(ctx, householdID)
	if err != nil {
		return preferences.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Save validates and stores every field of settings. A new notification
// period restarts throttling so the next run may notify right away.
func (s *SettingsService) Save(ctx context.Context, householdID uuid.UUID, settings preferences.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	prev, err := s.store.Get(ctx, householdID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if err := s.store.Save(ctx, householdID, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if prev.NotificationPeriodHours != settings.NotificationPeriodHours {
		if err := s.store.ClearNotified(ctx, householdID); err != nil {
			return fmt.Errorf("reset throttle: %w", err)
		}
	}
	return nil
}
