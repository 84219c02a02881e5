// Package pantry reads fridge state for the butler through the fridge services.
package pantry

import (
	"context"

	"github.com/google/uuid"

	fridgesvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

const pageSize = 100

// Pantry adapts the fridge application services to the butler's read model.
// Entry item lists go through the fridge read-through cache.
type Pantry struct {
	fridge *fridgesvcs.Services
}

func New(fridge *fridgesvcs.Services) *Pantry {
	return &Pantry{fridge: fridge}
}

func (p *Pantry) Household(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	return p.fridge.Household.Get(ctx, id)
}

// Entries returns every committed, unarchived entry.
func (p *Pantry) Entries(ctx context.Context, householdID uuid.UUID) ([]*models.Entry, error) {
	var out []*models.Entry
	q := repositories.EntryQuery{
		QueryOpts: repositories.QueryOpts{Limit: pageSize},
		OnlyReal:  true,
	}
	for {
		page, total, err := p.fridge.Entry.List(ctx, householdID, q)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < pageSize || len(out) >= total {
			return out, nil
		}
		q.Offset += pageSize
	}
}

// Items returns the entry's live items of both presences.
func (p *Pantry) Items(ctx context.Context, householdID, entryID uuid.UUID) ([]*models.Item, error) {
	return p.fridge.Item.ListForEntry(ctx, householdID, entryID, fridgesvcs.ItemFilter{
		Showing: repositories.ShowingFresh,
	})
}
