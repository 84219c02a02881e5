package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/pkg/events"
	fridgedomain "github.com/pyamsoft/fridge/services/fridge/domain"
	domainevents "github.com/pyamsoft/fridge/services/fridge/domain/events"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
	"github.com/pyamsoft/fridge/services/fridge/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. The bus is used to publish ItemChangedEvents after a successful save.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save upserts the item and publishes an ItemChangedEvent within the same transaction.
// A foreign key failure on entry_id surfaces as ErrEntryNotFound.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		inserted, err := db.New(tx).UpsertItem(ctx, db.UpsertItemParams{
			ID:          item.ID,
			EntryID:     item.EntryID,
			HouseholdID: item.HouseholdID,
			Name:        item.Name.String(),
			CategoryID:  nullUUID(item.CategoryID),
			Presence:    item.Presence.String(),
			Count:       int32(item.Count),
			CreatedAt:   item.CreatedAt,
			PurchasedAt: nullTime(item.PurchasedAt),
			ExpiresAt:   nullTime(item.ExpiresAt),
			ConsumedAt:  nullTime(item.ConsumedAt),
			SpoiledAt:   nullTime(item.SpoiledAt),
			IsReal:      item.IsReal,
		})
		if err != nil {
			if isForeignKeyViolation(err, "fridge_items_entry_id_fkey") {
				return fridgedomain.ErrEntryNotFound
			}
			if isForeignKeyViolation(err, "fridge_items_category_id_fkey") {
				return fridgedomain.ErrCategoryNotFound
			}
			if errors.Is(err, sql.ErrNoRows) {
				return fridgedomain.ErrItemNotFound
			}
			return fmt.Errorf("upsert item: %w", err)
		}

		change := domainevents.ChangeUpdate
		if inserted {
			change = domainevents.ChangeInsert
		}
		return r.publish(ctx, tx, change, item)
	})
}

// GetByID returns ErrItemNotFound when the item does not exist in the household.
func (r *ItemRepository) GetByID(ctx context.Context, householdID, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, db.GetItemParams{ID: id, HouseholdID: householdID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fridgedomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// Find retrieves a filtered page of items and the unpaged total.
func (r *ItemRepository) Find(ctx context.Context, householdID uuid.UUID, query repositories.ItemQuery) ([]*models.Item, int, error) {
	q := db.New(r.db.DB())

	showing := query.Showing
	if showing == "" {
		showing = repositories.ShowingFresh
	}
	var presence string
	if query.Presence != nil {
		presence = query.Presence.String()
	}

	rows, err := q.ListItems(ctx, db.ListItemsParams{
		HouseholdID: householdID,
		EntryID:     nullUUID(query.EntryID),
		Presence:    presence,
		CategoryID:  nullUUID(query.CategoryID),
		Showing:     string(showing),
		Search:      query.Search,
		OnlyReal:    query.OnlyReal,
		Limit:       int32(query.Limit),
		Offset:      int32(query.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}

	total, err := q.CountItems(ctx, db.CountItemsParams{
		HouseholdID: householdID,
		EntryID:     nullUUID(query.EntryID),
		Presence:    presence,
		CategoryID:  nullUUID(query.CategoryID),
		Showing:     string(showing),
		Search:      query.Search,
		OnlyReal:    query.OnlyReal,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, int(total), nil
}

// Delete removes an item and publishes the matching delete event.
func (r *ItemRepository) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItem(ctx, db.GetItemParams{ID: id, HouseholdID: householdID})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fridgedomain.ErrItemNotFound
			}
			return fmt.Errorf("query item: %w", err)
		}
		if _, err := q.DeleteItem(ctx, db.DeleteItemParams{ID: id, HouseholdID: householdID}); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return r.publish(ctx, tx, domainevents.ChangeDelete, rowToItem(row))
	})
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, change domainevents.ChangeType, item *models.Item) error {
	if r.bus == nil {
		return nil
	}
	evt := domainevents.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		Type:        change,
		ItemID:      item.ID,
		EntryID:     item.EntryID,
		HouseholdID: item.HouseholdID,
		Name:        item.Name.String(),
		Presence:    item.Presence.String(),
		Archived:    item.IsArchived(),
		OccurredAt:  time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		return fmt.Errorf("publish item %s: %w", change, err)
	}
	if err := r.bus.PublishTx(ctx, tx, domainevents.TopicItemChanged, msg); err != nil {
		return fmt.Errorf("publish item %s: %w", change, err)
	}
	return nil
}
