package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

// HouseholdService creates and loads households.
type HouseholdService struct {
	repo repositories.HouseholdRepository
}

func NewHouseholdService(repo repositories.HouseholdRepository) *HouseholdService {
	return &HouseholdService{repo: repo}
}

// Create validates name and timezone and persists a new household.
func (s *HouseholdService) Create(ctx context.Context, name, timezone string) (*models.Household, error) {
	hhName, err := models.NewName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fridgedomain.ErrInvalidName, err)
	}
	h, err := models.NewHousehold(hhName, timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fridgedomain.ErrInvalidTimezone, err)
	}
	if err := s.repo.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("save household: %w", err)
	}
	return h, nil
}

func (s *HouseholdService) Get(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

// List returns every household. The worker uses it to schedule reminders.
func (s *HouseholdService) List(ctx context.Context) ([]*models.Household, error) {
	hs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}
	return hs, nil
}
