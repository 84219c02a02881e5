package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/infrastructure/persistence/postgres/db"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation && pgErr.ConstraintName == constraint
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time.UTC()
	return &t
}

// datePtr reads a DATE column back as midnight UTC of the stored day.
func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	d := models.DateOf(n.Time)
	return &d
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func rowToHousehold(row db.FridgeHousehold) *models.Household {
	return &models.Household{
		ID:        row.ID,
		Name:      models.Name(row.Name),
		Timezone:  row.Timezone,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func rowToEntry(row db.FridgeEntry) *models.Entry {
	return &models.Entry{
		ID:          row.ID,
		HouseholdID: row.HouseholdID,
		Name:        models.Name(row.Name),
		CreatedAt:   row.CreatedAt.UTC(),
		ArchivedAt:  timePtr(row.ArchivedAt),
		IsReal:      row.IsReal,
	}
}

func rowToItem(row db.FridgeItem) *models.Item {
	return &models.Item{
		ID:          row.ID,
		EntryID:     row.EntryID,
		HouseholdID: row.HouseholdID,
		Name:        models.Name(row.Name),
		CategoryID:  uuidPtr(row.CategoryID),
		Presence:    models.Presence(row.Presence),
		Count:       int(row.Count),
		CreatedAt:   row.CreatedAt.UTC(),
		PurchasedAt: timePtr(row.PurchasedAt),
		ExpiresAt:   datePtr(row.ExpiresAt),
		ConsumedAt:  timePtr(row.ConsumedAt),
		SpoiledAt:   timePtr(row.SpoiledAt),
		IsReal:      row.IsReal,
	}
}

func rowToCategory(row db.FridgeCategory) *models.Category {
	return &models.Category{
		ID:        row.ID,
		Name:      models.Name(row.Name),
		Thumbnail: row.Thumbnail,
		IsDefault: row.IsDefault,
	}
}
