package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	appsvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

// ItemRequest is the request body for creating or replacing an item.
// On PUT every field is replaced; omit category_id or expires_on to clear them.
type ItemRequest struct {
	EntryID    *uuid.UUID `json:"entry_id,omitempty"`
	Name       string     `json:"name"                 validate:"required,notblank,max=255" example:"Milk"`
	Presence   string     `json:"presence"             validate:"required,oneof=NEED HAVE"  example:"HAVE"`
	Count      int        `json:"count"                validate:"min=0"                     example:"1"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ExpiresOn  *string    `json:"expires_on,omitempty" validate:"omitempty,date"            example:"2024-01-20"`
} // @name ItemRequest

// SimilarItemsResponse lists items related to one item by name.
type SimilarItemsResponse struct {
	Same    []ItemResponse `json:"same"`
	Similar []ItemResponse `json:"similar"`
} // @name SimilarItemsResponse

// ExpirationReportResponse partitions the household's live items.
type ExpirationReportResponse struct {
	Today            string         `json:"today"              example:"2024-01-15"`
	ExpiringSoonDays int            `json:"expiring_soon_days" example:"1"`
	SameDayExpired   bool           `json:"same_day_expired"   example:"false"`
	Expired          []ItemResponse `json:"expired"`
	ExpiringSoon     []ItemResponse `json:"expiring_soon"`
	Fresh            []ItemResponse `json:"fresh"`
	Undated          []ItemResponse `json:"undated"`
	Needed           []ItemResponse `json:"needed"`
} // @name ExpirationReportResponse

func (req *ItemRequest) input() (appsvcs.ItemInput, error) {
	in := appsvcs.ItemInput{
		Name:       req.Name,
		Presence:   req.Presence,
		Count:      req.Count,
		CategoryID: req.CategoryID,
	}
	if req.ExpiresOn != nil {
		d, err := time.Parse(time.DateOnly, *req.ExpiresOn)
		if err != nil {
			return in, fmt.Errorf("%w: expires_on must be YYYY-MM-DD", httpx.ErrBadParam)
		}
		in.ExpiresOn = &d
	}
	return in, nil
}

func parseItemFilter(r *http.Request) (*models.Presence, repositories.Showing, error) {
	var presence *models.Presence
	if raw := r.URL.Query().Get("presence"); raw != "" {
		p, err := models.ParsePresence(raw)
		if err != nil {
			return nil, "", fmt.Errorf("%w: presence must be NEED or HAVE", httpx.ErrBadParam)
		}
		presence = &p
	}
	showing := repositories.Showing(r.URL.Query().Get("showing"))
	switch showing {
	case "":
		showing = repositories.ShowingFresh
	case repositories.ShowingFresh, repositories.ShowingConsumed, repositories.ShowingSpoiled, repositories.ShowingAll:
	default:
		return nil, "", fmt.Errorf("%w: showing must be fresh, consumed, spoiled or all", httpx.ErrBadParam)
	}
	return presence, showing, nil
}

func optionalUUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a UUID", httpx.ErrBadParam, name)
	}
	return &id, nil
}

// ListItemsHandler handles GET /items.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists the household's committed items.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Param		entry_id	query		string	false	"Entry filter"
//	@Param		category_id	query		string	false	"Category filter"
//	@Param		presence	query		string	false	"NEED or HAVE"
//	@Param		showing		query		string	false	"fresh (default), consumed, spoiled or all"
//	@Param		q			query		string	false	"Name search"
//	@Param		limit		query		int		false	"Page size (1-100)"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{object}	ItemListResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	page, err := httpx.PageFromQuery(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	presence, showing, err := parseItemFilter(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	entryID, err := optionalUUIDQuery(r, "entry_id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	categoryID, err := optionalUUIDQuery(r, "category_id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	items, total, err := h.svc.Item.List(r.Context(), hh, repositories.ItemQuery{
		QueryOpts:  repositories.QueryOpts{Limit: page.Limit, Offset: page.Offset},
		EntryID:    entryID,
		Presence:   presence,
		CategoryID: categoryID,
		Showing:    showing,
		Search:     r.URL.Query().Get("q"),
		OnlyReal:   true,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemListResponse{
		Items:  toItemResponses(items),
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// EntryItemsHandler serves /entries/{id}/items.
type EntryItemsHandler struct {
	svc *appsvcs.Services
}

func NewEntryItemsHandler(svc *appsvcs.Services) *EntryItemsHandler {
	return &EntryItemsHandler{svc: svc}
}

// List returns every committed item of the entry.
//
//	@Summary	List entry items
//	@Tags		items
//	@Produce	json
//	@Param		id			path		string	true	"Entry ID"
//	@Param		presence	query		string	false	"NEED or HAVE"
//	@Param		showing		query		string	false	"fresh (default), consumed, spoiled or all"
//	@Success	200			{array}		ItemResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	404			{object}	ErrorResponse
//	@Router		/entries/{id}/items [get]
func (h *EntryItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	entryID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	presence, showing, err := parseItemFilter(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	items, err := h.svc.Item.ListForEntry(r.Context(), hh, entryID, appsvcs.ItemFilter{
		Presence: presence,
		Showing:  showing,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}

// Create commits a new item into the entry, creating the entry if needed.
//
//	@Summary	Add item to entry
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Entry ID"
//	@Param		request	body		ItemRequest	true	"Item"
//	@Success	201		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/entries/{id}/items [post]
func (h *EntryItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	entryID, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}
	createItem(w, r, h.svc, hh, &entryID, req)
}

// PostItemHandler handles POST /items.
type PostItemHandler struct {
	svc *appsvcs.Services
}

func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute commits a new item. Without entry_id it goes to the default entry.
//
//	@Summary	Create item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ItemRequest	true	"Item"
//	@Success	201		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}
	createItem(w, r, h.svc, hh, req.EntryID, req)
}

func createItem(w http.ResponseWriter, r *http.Request, svc *appsvcs.Services, hh uuid.UUID, entryID *uuid.UUID, req *ItemRequest) {
	in, err := req.input()
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	item, err := svc.Item.Create(r.Context(), hh, entryID, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

// ItemHandler serves the single-item routes under /items/{id}.
type ItemHandler struct {
	svc *appsvcs.Services
}

func NewItemHandler(svc *appsvcs.Services) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// Get returns one item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(hh, id uuid.UUID) (*models.Item, error) {
		return h.svc.Item.Get(r.Context(), hh, id)
	})
}

// Update replaces the item's editable fields.
//
//	@Summary	Update item
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Item ID"
//	@Param		request	body		ItemRequest	true	"Item"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/{id} [put]
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ItemRequest](w, r)
	if !ok {
		return
	}
	in, err := req.input()
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	item, err := h.svc.Item.Update(r.Context(), hh, id, in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// Consume marks the item eaten.
//
//	@Summary	Consume item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/items/{id}/consume [post]
func (h *ItemHandler) Consume(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(hh, id uuid.UUID) (*models.Item, error) {
		return h.svc.Item.Consume(r.Context(), hh, id)
	})
}

// Spoil marks the item gone bad.
//
//	@Summary	Spoil item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/items/{id}/spoil [post]
func (h *ItemHandler) Spoil(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(hh, id uuid.UUID) (*models.Item, error) {
		return h.svc.Item.Spoil(r.Context(), hh, id)
	})
}

// Restore clears the consumed and spoiled marks.
//
//	@Summary	Restore item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/items/{id}/restore [post]
func (h *ItemHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(hh, id uuid.UUID) (*models.Item, error) {
		return h.svc.Item.Restore(r.Context(), hh, id)
	})
}

// Delete hard-deletes a committed item.
//
//	@Summary	Delete item
//	@Tags		items
//	@Param		id	path	string	true	"Item ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.Item.Delete(r.Context(), hh, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Similar lists items related to this one by name.
//
//	@Summary	Similar items
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	SimilarItemsResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id}/similar [get]
func (h *ItemHandler) Similar(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	same, similar, err := h.svc.Item.Similar(r.Context(), hh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SimilarItemsResponse{
		Same:    toItemResponses(same),
		Similar: toItemResponses(similar),
	})
}

// Expiring returns the household's expiration report.
//
//	@Summary	Expiration report
//	@Tags		items
//	@Produce	json
//	@Success	200	{object}	ExpirationReportResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/items/expiring [get]
func (h *ItemHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Item.ExpirationReport(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ExpirationReportResponse{
		Today:            report.Today.Format(time.DateOnly),
		ExpiringSoonDays: report.Rules.SoonDays,
		SameDayExpired:   report.Rules.SameDayExpired,
		Expired:          toItemResponses(report.Expired),
		ExpiringSoon:     toItemResponses(report.ExpiringSoon),
		Fresh:            toItemResponses(report.Fresh),
		Undated:          toItemResponses(report.Undated),
		Needed:           toItemResponses(report.Needed),
	})
}

func (h *ItemHandler) run(w http.ResponseWriter, r *http.Request, fn func(hh, id uuid.UUID) (*models.Item, error)) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	item, err := fn(hh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
