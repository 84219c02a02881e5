package models

import "github.com/google/uuid"

// DefaultZoneName is used for zones whose way carries no name tag.
const DefaultZoneName = "Store"

// Store is a supermarket mapped as a single OSM node.
type Store struct {
	ID          int64
	HouseholdID uuid.UUID
	Name        string
	Coordinate  Coordinate
}

// Zone is a supermarket mapped as an OSM way. Points is the outline in way order.
type Zone struct {
	ID          int64
	HouseholdID uuid.UUID
	Name        string
	Points      []Coordinate
}

// Place kinds reported by nearby lookups.
const (
	PlaceStore = "store"
	PlaceZone  = "zone"
)

// Nearby pairs a store or zone with its distance from a point.
type Nearby struct {
	Kind     string
	ID       int64
	Name     string
	Distance float64
}
