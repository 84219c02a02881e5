package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
	domainsvcs "github.com/pyamsoft/fridge/services/fridge/domain/services"
)

// EntryService manages entries. Change events are published by the repository.
type EntryService struct {
	repo repositories.EntryRepository
	now  func() time.Time
}

func NewEntryService(repo repositories.EntryRepository) *EntryService {
	return &EntryService{repo: repo, now: time.Now}
}

func parseName(raw string) (models.Name, error) {
	name, err := models.NewName(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fridgedomain.ErrInvalidName, err)
	}
	if err := domainsvcs.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %w", fridgedomain.ErrInvalidName, err)
	}
	return name, nil
}

// Create persists a new entry. A placeholder (real=false) can be filled and
// committed later; it is hidden from listings that ask for real entries only.
func (s *EntryService) Create(ctx context.Context, householdID uuid.UUID, name string, real bool) (*models.Entry, error) {
	entryName, err := parseName(name)
	if err != nil {
		return nil, err
	}
	entry := models.NewEntry(householdID, entryName)
	if real {
		entry.MakeReal()
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) Get(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.repo.GetByID(ctx, householdID, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns a page of entries plus the unpaged total.
func (s *EntryService) List(ctx context.Context, householdID uuid.UUID, q repositories.EntryQuery) ([]*models.Entry, int, error) {
	entries, total, err := s.repo.Find(ctx, householdID, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return entries, total, nil
}

// Rename changes the entry name and commits it.
func (s *EntryService) Rename(ctx context.Context, householdID, id uuid.UUID, name string) (*models.Entry, error) {
	entryName, err := parseName(name)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, householdID, id, func(e *models.Entry) {
		e.Rename(entryName)
		e.MakeReal()
	})
}

func (s *EntryService) Archive(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error) {
	now := s.now()
	return s.mutate(ctx, householdID, id, func(e *models.Entry) { e.Archive(now) })
}

func (s *EntryService) Unarchive(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error) {
	return s.mutate(ctx, householdID, id, func(e *models.Entry) { e.Unarchive() })
}

// Delete removes the entry and every item in it.
func (s *EntryService) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, householdID, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// EnsureDefault returns the household's real "My Fridge" entry, creating it
// when it does not exist yet.
func (s *EntryService) EnsureDefault(ctx context.Context, householdID uuid.UUID) (*models.Entry, error) {
	entry, err := s.repo.FindByName(ctx, householdID, models.DefaultEntryName)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, fridgedomain.ErrEntryNotFound) {
		return nil, fmt.Errorf("find default entry: %w", err)
	}

	entry = models.NewEntry(householdID, models.DefaultEntryName)
	entry.MakeReal()
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save default entry: %w", err)
	}
	return entry, nil
}

// Guarantee makes sure an entry with id exists and is real before items are
// committed into it. A missing entry is created under the default name.
func (s *EntryService) Guarantee(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.repo.GetByID(ctx, householdID, id)
	switch {
	case errors.Is(err, fridgedomain.ErrEntryNotFound):
		entry = &models.Entry{
			ID:          id,
			HouseholdID: householdID,
			Name:        models.DefaultEntryName,
			CreatedAt:   s.now().UTC(),
			IsReal:      true,
		}
		if err := s.repo.Save(ctx, entry); err != nil {
			return nil, fmt.Errorf("create entry: %w", err)
		}
		return entry, nil
	case err != nil:
		return nil, fmt.Errorf("get entry: %w", err)
	}

	if entry.IsArchived() {
		return nil, fridgedomain.ErrEntryArchived
	}
	if !entry.IsReal {
		entry.MakeReal()
		if err := s.repo.Save(ctx, entry); err != nil {
			return nil, fmt.Errorf("commit entry: %w", err)
		}
	}
	return entry, nil
}

func (s *EntryService) mutate(ctx context.Context, householdID, id uuid.UUID, fn func(*models.Entry)) (*models.Entry, error) {
	entry, err := s.repo.GetByID(ctx, householdID, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	fn(entry)
	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}
