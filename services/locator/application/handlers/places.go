package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	appsvcs "github.com/pyamsoft/fridge/services/locator/application/services"
	"github.com/pyamsoft/fridge/services/locator/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"store not found"`
} // @name LocatorErrorResponse

// PointResponse is a latitude/longitude pair.
type PointResponse struct {
	Lat float64 `json:"lat" example:"40.7128"`
	Lon float64 `json:"lon" example:"-74.006"`
} // @name PointResponse

// StoreResponse is a supermarket mapped as a single point.
type StoreResponse struct {
	ID   int64   `json:"id"   example:"4321"`
	Name string  `json:"name" example:"Corner Grocer"`
	Lat  float64 `json:"lat"  example:"40.7128"`
	Lon  float64 `json:"lon"  example:"-74.006"`
} // @name StoreResponse

// ZoneResponse is a supermarket mapped as an outline.
type ZoneResponse struct {
	ID     int64           `json:"id"     example:"98765"`
	Name   string          `json:"name"   example:"Big Market"`
	Points []PointResponse `json:"points"`
} // @name ZoneResponse

// NearbyResponse is one place close to the reported position.
type NearbyResponse struct {
	Kind           string  `json:"kind"            example:"store"`
	ID             int64   `json:"id"              example:"4321"`
	Name           string  `json:"name"            example:"Corner Grocer"`
	DistanceMeters float64 `json:"distance_meters" example:"212.5"`
} // @name NearbyResponse

// RefreshRequest is the area to search for supermarkets.
type RefreshRequest struct {
	South float64 `json:"south" validate:"latitude"                  example:"40.70"`
	West  float64 `json:"west"  validate:"longitude"                 example:"-74.02"`
	North float64 `json:"north" validate:"latitude,gtfield=South"    example:"40.72"`
	East  float64 `json:"east"  validate:"longitude,gtfield=West"    example:"-73.99"`
} // @name RefreshRequest

// RefreshResponse counts the places saved by a refresh.
type RefreshResponse struct {
	Stores int `json:"stores" example:"4"`
	Zones  int `json:"zones"  example:"2"`
} // @name RefreshResponse

// CheckInRequest reports the household's current position.
type CheckInRequest struct {
	Lat float64 `json:"lat" validate:"latitude"  example:"40.7128"`
	Lon float64 `json:"lon" validate:"longitude" example:"-74.006"`
} // @name CheckInRequest

// CheckInResponse lists nearby places and the location order that was placed.
type CheckInResponse struct {
	Nearby []NearbyResponse `json:"nearby"`
	Tag    string           `json:"tag" example:"butler-location-550e8400-e29b-41d4-a716-446655440000"`
} // @name CheckInResponse

// LocatorHandler serves the /locator endpoints.
type LocatorHandler struct {
	svc *appsvcs.Services
}

func NewLocatorHandler(svc *appsvcs.Services) *LocatorHandler {
	return &LocatorHandler{svc: svc}
}

// Refresh looks up supermarkets inside a bounding box and saves them.
//
//	@Summary	Refresh nearby stores
//	@Tags		locator
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RefreshRequest	true	"Bounding box"
//	@Success	200		{object}	RefreshResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/locator/refresh [post]
func (h *LocatorHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RefreshRequest](w, r)
	if !ok {
		return
	}
	box := models.BoundingBox{South: req.South, West: req.West, North: req.North, East: req.East}
	res, err := h.svc.Locator.Refresh(r.Context(), hh, box)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, RefreshResponse{Stores: res.Stores, Zones: res.Zones})
}

// Stores lists the saved stores.
//
//	@Summary	List stores
//	@Tags		locator
//	@Produce	json
//	@Success	200	{array}	StoreResponse
//	@Router		/locator/stores [get]
func (h *LocatorHandler) Stores(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	stores, err := h.svc.Locator.Stores(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]StoreResponse, len(stores))
	for i, s := range stores {
		out[i] = StoreResponse{ID: s.ID, Name: s.Name, Lat: s.Coordinate.Lat, Lon: s.Coordinate.Lon}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Zones lists the saved zones.
//
//	@Summary	List zones
//	@Tags		locator
//	@Produce	json
//	@Success	200	{array}	ZoneResponse
//	@Router		/locator/zones [get]
func (h *LocatorHandler) Zones(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	zones, err := h.svc.Locator.Zones(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		points := make([]PointResponse, len(z.Points))
		for j, p := range z.Points {
			points[j] = PointResponse{Lat: p.Lat, Lon: p.Lon}
		}
		out[i] = ZoneResponse{ID: z.ID, Name: z.Name, Points: points}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// DeleteStore forgets a saved store.
//
//	@Summary	Delete store
//	@Tags		locator
//	@Param		id	path	int	true	"OSM node id"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locator/stores/{id} [delete]
func (h *LocatorHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	h.deletePlace(w, r, h.svc.Locator.DeleteStore)
}

// DeleteZone forgets a saved zone.
//
//	@Summary	Delete zone
//	@Tags		locator
//	@Param		id	path	int	true	"OSM way id"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locator/zones/{id} [delete]
func (h *LocatorHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	h.deletePlace(w, r, h.svc.Locator.DeleteZone)
}

func (h *LocatorHandler) deletePlace(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, hh uuid.UUID, id int64) error) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamInt64(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := del(r.Context(), hh, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Nearby lists saved places close to a position. Range defaults to the
// household's nearby range setting.
//
//	@Summary	Nearby places
//	@Tags		locator
//	@Produce	json
//	@Param		lat		query	number	true	"Latitude"
//	@Param		lon		query	number	true	"Longitude"
//	@Param		range	query	number	false	"Range in metres"
//	@Success	200		{array}		NearbyResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/locator/nearby [get]
func (h *LocatorHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	lat, err := httpx.QueryFloat(r, "lat")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	lon, err := httpx.QueryFloat(r, "lon")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	fallback, err := h.svc.Locator.Range(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	rangeMeters, err := httpx.QueryFloatDefault(r, "range", fallback)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	nearby, err := h.svc.Locator.Nearby(r.Context(), hh, models.Coordinate{Lat: lat, Lon: lon}, rangeMeters)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toNearbyResponses(nearby))
}

// CheckIn reports the current position. The butler is told which saved
// places are within range.
//
//	@Summary	Check in
//	@Tags		locator
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CheckInRequest	true	"Position"
//	@Success	202		{object}	CheckInResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/locator/checkin [post]
func (h *LocatorHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CheckInRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Locator.CheckIn(r.Context(), hh, models.Coordinate{Lat: req.Lat, Lon: req.Lon})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, CheckInResponse{Nearby: toNearbyResponses(res.Nearby), Tag: res.Tag})
}

func householdID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.HouseholdIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

func toNearbyResponses(nearby []models.Nearby) []NearbyResponse {
	out := make([]NearbyResponse, len(nearby))
	for i, n := range nearby {
		out[i] = NearbyResponse{Kind: n.Kind, ID: n.ID, Name: n.Name, DistanceMeters: n.Distance}
	}
	return out
}
