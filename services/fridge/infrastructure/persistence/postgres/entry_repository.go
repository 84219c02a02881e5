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

// EntryRepository implements repositories.EntryRepository against PostgreSQL.
type EntryRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewEntryRepository returns an EntryRepository. bus may be nil, in which case
// no change events are published.
func NewEntryRepository(database *database.Database, bus *events.EventBus) *EntryRepository {
	return &EntryRepository{db: database, bus: bus}
}

// Save upserts the entry and publishes an EntryChangedEvent within the same
// transaction. Returns ErrEntryAlreadyExists when another live entry has the
// same name.
func (r *EntryRepository) Save(ctx context.Context, entry *models.Entry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		inserted, err := db.New(tx).UpsertEntry(ctx, db.UpsertEntryParams{
			ID:          entry.ID,
			HouseholdID: entry.HouseholdID,
			Name:        entry.Name.String(),
			CreatedAt:   entry.CreatedAt,
			ArchivedAt:  nullTime(entry.ArchivedAt),
			IsReal:      entry.IsReal,
		})
		if err != nil {
			if isUniqueViolation(err) {
				return fridgedomain.ErrEntryAlreadyExists
			}
			if errors.Is(err, sql.ErrNoRows) {
				// id belongs to another household
				return fridgedomain.ErrEntryNotFound
			}
			return fmt.Errorf("upsert entry: %w", err)
		}

		change := domainevents.ChangeUpdate
		if inserted {
			change = domainevents.ChangeInsert
		}
		return r.publish(ctx, tx, change, entry)
	})
}

// GetByID returns ErrEntryNotFound when the entry does not exist in the household.
func (r *EntryRepository) GetByID(ctx context.Context, householdID, id uuid.UUID) (*models.Entry, error) {
	row, err := db.New(r.db.DB()).GetEntry(ctx, db.GetEntryParams{ID: id, HouseholdID: householdID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fridgedomain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("query entry: %w", err)
	}
	return rowToEntry(row), nil
}

func (r *EntryRepository) FindByName(ctx context.Context, householdID uuid.UUID, name models.Name) (*models.Entry, error) {
	row, err := db.New(r.db.DB()).FindEntryByName(ctx, db.FindEntryByNameParams{
		HouseholdID: householdID,
		Name:        name.String(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fridgedomain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("query entry by name: %w", err)
	}
	return rowToEntry(row), nil
}

func (r *EntryRepository) Find(ctx context.Context, householdID uuid.UUID, query repositories.EntryQuery) ([]*models.Entry, int, error) {
	q := db.New(r.db.DB())

	rows, err := q.ListEntries(ctx, db.ListEntriesParams{
		HouseholdID:     householdID,
		IncludeArchived: query.IncludeArchived,
		OnlyReal:        query.OnlyReal,
		Search:          query.Search,
		Limit:           int32(query.Limit),
		Offset:          int32(query.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query entries: %w", err)
	}

	total, err := q.CountEntries(ctx, db.CountEntriesParams{
		HouseholdID:     householdID,
		IncludeArchived: query.IncludeArchived,
		OnlyReal:        query.OnlyReal,
		Search:          query.Search,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	entries := make([]*models.Entry, len(rows))
	for i, row := range rows {
		entries[i] = rowToEntry(row)
	}
	return entries, int(total), nil
}

// Delete removes the entry; its items go with it through ON DELETE CASCADE.
// An ItemChangedEvent of type delete_all lets subscribers drop the entry's
// cached item list.
func (r *EntryRepository) Delete(ctx context.Context, householdID, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := db.New(tx).DeleteEntry(ctx, db.DeleteEntryParams{ID: id, HouseholdID: householdID})
		if err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		if n == 0 {
			return fridgedomain.ErrEntryNotFound
		}

		entry := &models.Entry{ID: id, HouseholdID: householdID}
		if err := r.publish(ctx, tx, domainevents.ChangeDelete, entry); err != nil {
			return err
		}
		if r.bus == nil {
			return nil
		}
		evt := domainevents.ItemChangedEvent{
			EventID:     uuid.New(),
			Version:     1,
			Type:        domainevents.ChangeDeleteAll,
			EntryID:     id,
			HouseholdID: householdID,
			OccurredAt:  time.Now().UTC(),
		}
		msg, err := events.NewJSONMessage(evt.EventID, evt.Version, evt)
		if err != nil {
			return fmt.Errorf("publish items deleted: %w", err)
		}
		return r.bus.PublishTx(ctx, tx, domainevents.TopicItemChanged, msg)
	})
}

func (r *EntryRepository) publish(ctx context.Context, tx *sql.Tx, change domainevents.ChangeType, entry *models.Entry) error {
	if r.bus == nil {
		return nil
	}
	evt := domainevents.EntryChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		Type:        change,
		EntryID:     entry.ID,
		HouseholdID: entry.HouseholdID,
		Name:        entry.Name.String(),
		Archived:    entry.IsArchived(),
		OccurredAt:  time.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(evt.EventID, evt.Version, evt)
	if err != nil {
		return fmt.Errorf("publish entry %s: %w", change, err)
	}
	if err := r.bus.PublishTx(ctx, tx, domainevents.TopicEntryChanged, msg); err != nil {
		return fmt.Errorf("publish entry %s: %w", change, err)
	}
	return nil
}
