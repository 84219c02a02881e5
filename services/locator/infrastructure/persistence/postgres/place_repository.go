package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pyamsoft/fridge/pkg/database"
	"github.com/pyamsoft/fridge/services/locator/domain"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
)

const (
	upsertStore = `INSERT INTO locator_stores (id, household_id, name, lat, lon)
VALUES (:id, :household_id, :name, :lat, :lon)
ON CONFLICT (household_id, id) DO UPDATE
SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon, updated_at = now()`

	upsertZone = `INSERT INTO locator_zones (id, household_id, name, points)
VALUES (:id, :household_id, :name, :points)
ON CONFLICT (household_id, id) DO UPDATE
SET name = EXCLUDED.name, points = EXCLUDED.points, updated_at = now()`

	selectStores = `SELECT id, household_id, name, lat, lon FROM locator_stores
WHERE household_id = $1 ORDER BY name, id`

	selectZones = `SELECT id, household_id, name, points FROM locator_zones
WHERE household_id = $1 ORDER BY name, id`

	deleteStore = `DELETE FROM locator_stores WHERE household_id = $1 AND id = $2`
	deleteZone  = `DELETE FROM locator_zones WHERE household_id = $1 AND id = $2`
)

type storeRow struct {
	ID          int64     `db:"id"`
	HouseholdID uuid.UUID `db:"household_id"`
	Name        string    `db:"name"`
	Lat         float64   `db:"lat"`
	Lon         float64   `db:"lon"`
}

type zoneRow struct {
	ID          int64     `db:"id"`
	HouseholdID uuid.UUID `db:"household_id"`
	Name        string    `db:"name"`
	Points      pointList `db:"points"`
}

// pointList is stored as a JSONB array of {"lat","lon"} objects.
type pointList []models.Coordinate

func (p pointList) Value() (driver.Value, error) {
	if p == nil {
		p = pointList{}
	}
	b, err := json.Marshal([]models.Coordinate(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *pointList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan points: unsupported type %T", src)
	}
	return json.Unmarshal(raw, (*[]models.Coordinate)(p))
}

// PlaceRepository stores nearby stores and zones with sqlx.
type PlaceRepository struct {
	db *sqlx.DB
}

func NewPlaceRepository(d *database.Database) *PlaceRepository {
	return &PlaceRepository{db: sqlx.NewDb(d.DB(), "pgx")}
}

func (r *PlaceRepository) Upsert(ctx context.Context, householdID uuid.UUID, stores []models.Store, zones []models.Zone) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range stores {
		row := storeRow{ID: s.ID, HouseholdID: householdID, Name: s.Name, Lat: s.Coordinate.Lat, Lon: s.Coordinate.Lon}
		if _, err := tx.NamedExecContext(ctx, upsertStore, row); err != nil {
			return fmt.Errorf("upsert store %d: %w", s.ID, err)
		}
	}
	for _, z := range zones {
		row := zoneRow{ID: z.ID, HouseholdID: householdID, Name: z.Name, Points: pointList(z.Points)}
		if _, err := tx.NamedExecContext(ctx, upsertZone, row); err != nil {
			return fmt.Errorf("upsert zone %d: %w", z.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *PlaceRepository) Stores(ctx context.Context, householdID uuid.UUID) ([]models.Store, error) {
	var rows []storeRow
	if err := r.db.SelectContext(ctx, &rows, selectStores, householdID); err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	out := make([]models.Store, len(rows))
	for i, row := range rows {
		out[i] = models.Store{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			Name:        row.Name,
			Coordinate:  models.Coordinate{Lat: row.Lat, Lon: row.Lon},
		}
	}
	return out, nil
}

func (r *PlaceRepository) Zones(ctx context.Context, householdID uuid.UUID) ([]models.Zone, error) {
	var rows []zoneRow
	if err := r.db.SelectContext(ctx, &rows, selectZones, householdID); err != nil {
		return nil, fmt.Errorf("query zones: %w", err)
	}
	out := make([]models.Zone, len(rows))
	for i, row := range rows {
		out[i] = models.Zone{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			Name:        row.Name,
			Points:      []models.Coordinate(row.Points),
		}
	}
	return out, nil
}

func (r *PlaceRepository) DeleteStore(ctx context.Context, householdID uuid.UUID, id int64) error {
	return r.delete(ctx, deleteStore, householdID, id, domain.ErrStoreNotFound)
}

func (r *PlaceRepository) DeleteZone(ctx context.Context, householdID uuid.UUID, id int64) error {
	return r.delete(ctx, deleteZone, householdID, id, domain.ErrZoneNotFound)
}

func (r *PlaceRepository) delete(ctx context.Context, query string, householdID uuid.UUID, id int64, missing error) error {
	res, err := r.db.ExecContext(ctx, query, householdID, id)
	if err != nil {
		return fmt.Errorf("delete place %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete place %d: %w", id, err)
	}
	if n == 0 {
		return missing
	}
	return nil
}
