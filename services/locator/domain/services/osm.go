package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/locator/domain/models"
)

// Element kinds found in an Overpass response.
const (
	ElementNode     = "node"
	ElementWay      = "way"
	ElementRelation = "relation"
)

// Element is one entry of an Overpass "elements" array.
type Element struct {
	Type  string
	ID    int64
	Lat   float64
	Lon   float64
	Name  string
	Nodes []int64
}

// Convert turns Overpass elements into stores and zones for household.
// Every way becomes a zone outlined by its nodes. Nodes used by any way are
// consumed; the rest become stores when they carry a name. Relations are
// ignored and ways referencing unknown nodes keep only the resolved ones.
func Convert(household uuid.UUID, elements []Element) ([]models.Store, []models.Zone) {
	nodes := make(map[int64]Element)
	var ways []Element
	for _, e := range elements {
		switch e.Type {
		case ElementNode:
			nodes[e.ID] = e
		case ElementWay:
			ways = append(ways, e)
		}
	}

	consumed := make(map[int64]bool)
	zones := make([]models.Zone, 0, len(ways))
	for _, w := range ways {
		points := make([]models.Coordinate, 0, len(w.Nodes))
		for _, id := range w.Nodes {
			n, ok := nodes[id]
			if !ok {
				continue
			}
			consumed[id] = true
			points = append(points, models.Coordinate{Lat: n.Lat, Lon: n.Lon})
		}
		name := strings.TrimSpace(w.Name)
		if name == "" {
			name = models.DefaultZoneName
		}
		zones = append(zones, models.Zone{ID: w.ID, HouseholdID: household, Name: name, Points: points})
	}

	stores := make([]models.Store, 0)
	for _, e := range elements {
		if e.Type != ElementNode || consumed[e.ID] {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		stores = append(stores, models.Store{
			ID:          e.ID,
			HouseholdID: household,
			Name:        name,
			Coordinate:  models.Coordinate{Lat: e.Lat, Lon: e.Lon},
		})
	}
	return stores, zones
}
