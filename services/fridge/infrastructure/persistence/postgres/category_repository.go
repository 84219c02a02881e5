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

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

func NewCategoryRepository(database *database.Database) *CategoryRepository {
	return &CategoryRepository{db: database}
}

// InsertDefaults inserts every category in one transaction and returns how
// many were new.
func (r *CategoryRepository) InsertDefaults(ctx context.Context, categories []*models.Category) (int, error) {
	var inserted int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		for _, c := range categories {
			n, err := q.InsertCategory(ctx, db.InsertCategoryParams{
				ID:        c.ID,
				Name:      c.Name.String(),
				Thumbnail: c.Thumbnail,
				IsDefault: c.IsDefault,
			})
			if err != nil {
				return fmt.Errorf("insert category %q: %w", c.Name, err)
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := db.New(r.db.DB()).GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fridgedomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return rowToCategory(row), nil
}

func (r *CategoryRepository) ListWithCounts(ctx context.Context, householdID uuid.UUID) ([]*models.CategoryWithCount, error) {
	rows, err := db.New(r.db.DB()).ListCategoriesWithCounts(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	out := make([]*models.CategoryWithCount, len(rows))
	for i, row := range rows {
		out[i] = &models.CategoryWithCount{
			Category: models.Category{
				ID:        row.ID,
				Name:      models.Name(row.Name),
				Thumbnail: row.Thumbnail,
				IsDefault: row.IsDefault,
			},
			ItemCount: int(row.ItemCount),
		}
	}
	return out, nil
}
