package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

// CategoriesSeededFlag marks that the default categories were inserted.
const CategoriesSeededFlag = "persistent_categories_v1"

// CategoryService seeds and lists categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	items    repositories.ItemRepository
	flags    FlagStore
	defaults func() ([]*models.Category, error)
	log      logger.Logger
}

func NewCategoryService(
	repo repositories.CategoryRepository,
	items repositories.ItemRepository,
	flags FlagStore,
	defaults func() ([]*models.Category, error),
	log logger.Logger,
) *CategoryService {
	return &CategoryService{repo: repo, items: items, flags: flags, defaults: defaults, log: log}
}

// SeedDefaults inserts the default categories the first time it runs in a
// deployment and is a no-op afterwards. The flag is released again when the
// insert fails so the next start retries.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	first, err := s.flags.SetFlagOnce(ctx, CategoriesSeededFlag)
	if err != nil {
		return 0, fmt.Errorf("claim seed flag: %w", err)
	}
	if !first {
		return 0, nil
	}

	n, err := s.insertDefaults(ctx)
	if err != nil {
		if clearErr := s.flags.ClearFlag(ctx, CategoriesSeededFlag); clearErr != nil {
			s.log.ErrorContext(ctx, "release seed flag", "error", clearErr)
		}
		return 0, err
	}
	s.log.InfoContext(ctx, "default categories seeded", "inserted", n)
	return n, nil
}

func (s *CategoryService) insertDefaults(ctx context.Context) (int, error) {
	cats, err := s.defaults()
	if err != nil {
		return 0, fmt.Errorf("load default categories: %w", err)
	}
	n, err := s.repo.InsertDefaults(ctx, cats)
	if err != nil {
		return 0, fmt.Errorf("insert default categories: %w", err)
	}
	return n, nil
}

// List returns every category with the household's live item count.
func (s *CategoryService) List(ctx context.Context, householdID uuid.UUID) ([]*models.CategoryWithCount, error) {
	cats, err := s.repo.ListWithCounts(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Items returns a page of the household's live items in the category.
func (s *CategoryService) Items(ctx context.Context, householdID, id uuid.UUID, page repositories.QueryOpts) ([]*models.Item, int, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, 0, fmt.Errorf("get category: %w", err)
	}
	items, total, err := s.items.Find(ctx, householdID, repositories.ItemQuery{
		QueryOpts:  page,
		CategoryID: &id,
		Showing:    repositories.ShowingFresh,
		OnlyReal:   true,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list category items: %w", err)
	}
	return items, total, nil
}
