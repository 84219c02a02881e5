package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/logger"
	butlermodels "github.com/pyamsoft/fridge/services/butler/domain/models"
	"github.com/pyamsoft/fridge/services/locator/domain"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
	"github.com/pyamsoft/fridge/services/locator/domain/repositories"
	domainsvcs "github.com/pyamsoft/fridge/services/locator/domain/services"
)

// RefreshResult counts what a refresh saved.
type RefreshResult struct {
	Stores int
	Zones  int
}

// CheckInResult lists the places near a reported position.
type CheckInResult struct {
	Nearby []models.Nearby
	// Tag identifies the location order that was placed.
	Tag string
}

// LocatorService keeps each household's nearby stores and turns position
// reports into location orders.
type LocatorService struct {
	repo     repositories.PlaceRepository
	source   MapSource
	settings SettingsReader
	orders   OrderPlacer
	log      logger.Logger
}

func NewLocatorService(
	repo repositories.PlaceRepository,
	source MapSource,
	settings SettingsReader,
	orders OrderPlacer,
	log logger.Logger,
) *LocatorService {
	return &LocatorService{repo: repo, source: source, settings: settings, orders: orders, log: log}
}

// Refresh fetches supermarkets inside box and saves them for the household.
func (s *LocatorService) Refresh(ctx context.Context, householdID uuid.UUID, box models.BoundingBox) (RefreshResult, error) {
	if err := box.Validate(); err != nil {
		return RefreshResult{}, err
	}
	elements, err := s.source.Supermarkets(ctx, box)
	if err != nil {
		return RefreshResult{}, err
	}
	stores, zones := domainsvcs.Convert(householdID, elements)
	if err := s.repo.Upsert(ctx, householdID, stores, zones); err != nil {
		return RefreshResult{}, err
	}
	s.log.InfoContext(ctx, "nearby places refreshed",
		"household_id", householdID,
		"stores", len(stores),
		"zones", len(zones),
	)
	return RefreshResult{Stores: len(stores), Zones: len(zones)}, nil
}

func (s *LocatorService) Stores(ctx context.Context, householdID uuid.UUID) ([]models.Store, error) {
	return s.repo.Stores(ctx, householdID)
}

func (s *LocatorService) Zones(ctx context.Context, householdID uuid.UUID) ([]models.Zone, error) {
	return s.repo.Zones(ctx, householdID)
}

func (s *LocatorService) DeleteStore(ctx context.Context, householdID uuid.UUID, id int64) error {
	return s.repo.DeleteStore(ctx, householdID, id)
}

func (s *LocatorService) DeleteZone(ctx context.Context, householdID uuid.UUID, id int64) error {
	return s.repo.DeleteZone(ctx, householdID, id)
}

// Nearby pairs saved places within rangeMeters of p, closest first.
func (s *LocatorService) Nearby(ctx context.Context, householdID uuid.UUID, p models.Coordinate, rangeMeters float64) ([]models.Nearby, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rangeMeters < 0 {
		return nil, fmt.Errorf("%w: range must not be negative", domain.ErrInvalidCoordinate)
	}
	stores, err := s.repo.Stores(ctx, householdID)
	if err != nil {
		return nil, err
	}
	zones, err := s.repo.Zones(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return domainsvcs.FindNearby(p, rangeMeters, stores, zones), nil
}

// Range returns the household's configured nearby range in metres.
func (s *LocatorService) Range(ctx context.Context, householdID uuid.UUID) (float64, error) {
	settings, err := s.settings.Get(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}
	return settings.NearbyRangeMeters, nil
}

// CheckIn looks for saved places within the household's nearby range and
// places a location order naming them. An empty check-in still places an
// order so a stale nearby reminder is withdrawn.
func (s *LocatorService) CheckIn(ctx context.Context, householdID uuid.UUID, p models.Coordinate) (CheckInResult, error) {
	rangeMeters, err := s.Range(ctx, householdID)
	if err != nil {
		return CheckInResult{}, err
	}
	nearby, err := s.Nearby(ctx, householdID, p, rangeMeters)
	if err != nil {
		return CheckInResult{}, err
	}

	names := make([]string, 0, len(nearby))
	seen := make(map[string]bool, len(nearby))
	for _, n := range nearby {
		if seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		names = append(names, n.Name)
	}

	order := butlermodels.Order{Type: butlermodels.OrderLocation, HouseholdID: householdID, Stores: names}
	if err := s.orders.Place(ctx, order); err != nil {
		return CheckInResult{}, fmt.Errorf("place location order: %w", err)
	}
	return CheckInResult{Nearby: nearby, Tag: order.Tag()}, nil
}
