package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/database"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/infrastructure/persistence/postgres/db"
)

// HouseholdRepository implements repositories.HouseholdRepository against PostgreSQL.
type HouseholdRepository struct {
	db *database.Database
}

func NewHouseholdRepository(database *database.Database) *HouseholdRepository {
	return &HouseholdRepository{db: database}
}

func (r *HouseholdRepository) Save(ctx context.Context, h *models.Household) error {
	q := db.New(r.db.DB())
	if err := q.InsertHousehold(ctx, db.InsertHouseholdParams{
		ID:        h.ID,
		Name:      h.Name.String(),
		Timezone:  h.Timezone,
		CreatedAt: h.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert household: %w", err)
	}
	return nil
}

// GetByID returns ErrHouseholdNotFound when no row matches.
func (r *HouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	row, err := db.New(r.db.DB()).GetHousehold(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fridgedomain.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("query household: %w", err)
	}
	return rowToHousehold(row), nil
}

func (r *HouseholdRepository) List(ctx context.Context) ([]*models.Household, error) {
	rows, err := db.New(r.db.DB()).ListHouseholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("query households: %w", err)
	}
	out := make([]*models.Household, len(rows))
	for i, row := range rows {
		out[i] = rowToHousehold(row)
	}
	return out, nil
}
