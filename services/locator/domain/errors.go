package domain

import "errors"

// Sentinel errors for the locator domain.
var (
	// ErrStoreNotFound indicates the store is not saved for the household.
	ErrStoreNotFound = errors.New("store not found")

	// ErrZoneNotFound indicates the zone is not saved for the household.
	ErrZoneNotFound = errors.New("zone not found")

	// ErrInvalidBoundingBox indicates edges that are out of range or out of order.
	ErrInvalidBoundingBox = errors.New("invalid bounding box")

	// ErrInvalidCoordinate indicates a latitude or longitude out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrOverpassUnavailable wraps any failure talking to the Overpass API.
	ErrOverpassUnavailable = errors.New("overpass unavailable")
)
