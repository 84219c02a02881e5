package models

import (
	"fmt"

	"github.com/pyamsoft/fridge/services/locator/domain"
)

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: (%g, %g)", domain.ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	return nil
}

// BoundingBox is the south/west/north/east rectangle an Overpass query covers.
type BoundingBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Validate requires in-range edges with south below north and west below east.
func (b BoundingBox) Validate() error {
	sw := Coordinate{Lat: b.South, Lon: b.West}
	ne := Coordinate{Lat: b.North, Lon: b.East}
	if sw.Validate() != nil || ne.Validate() != nil {
		return fmt.Errorf("%w: edge out of range", domain.ErrInvalidBoundingBox)
	}
	if b.South >= b.North {
		return fmt.Errorf("%w: south must be below north", domain.ErrInvalidBoundingBox)
	}
	if b.West >= b.East {
		return fmt.Errorf("%w: west must be below east", domain.ErrInvalidBoundingBox)
	}
	return nil
}
