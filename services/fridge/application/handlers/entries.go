package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	appsvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

// CreateEntryRequest is the request body for POST /entries.
// Real defaults to true; send false to create an editable placeholder.
type CreateEntryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255" example:"Garage Fridge"`
	Real *bool  `json:"real"                                      example:"true"`
} // @name CreateEntryRequest

// RenameEntryRequest is the request body for PUT /entries/{id}.
type RenameEntryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255" example:"Basement Fridge"`
} // @name RenameEntryRequest

// ListEntriesHandler handles GET /entries.
type ListEntriesHandler struct {
	svc *appsvcs.Services
}

func NewListEntriesHandler(svc *appsvcs.Services) *ListEntriesHandler {
	return &ListEntriesHandler{svc: svc}
}

// Execute lists the household's entries.
//
//	@Summary	List entries
//	@Tags		entries
//	@Produce	json
//	@Param		archived	query		bool	false	"Include archived entries"
//	@Param		all			query		bool	false	"Include placeholder entries"
//	@Param		q			query		string	false	"Name search"
//	@Param		limit		query		int		false	"Page size (1-100)"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{object}	EntryListResponse
//	@Failure	400			{object}	ErrorResponse
//	@Failure	401			{object}	ErrorResponse
//	@Router		/entries [get]
func (h *ListEntriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	page, err := httpx.PageFromQuery(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	archived, err := httpx.QueryBool(r, "archived")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	all, err := httpx.QueryBool(r, "all")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	entries, total, err := h.svc.Entry.List(r.Context(), hh, repositories.EntryQuery{
		QueryOpts:       repositories.QueryOpts{Limit: page.Limit, Offset: page.Offset},
		IncludeArchived: archived,
		OnlyReal:        !all,
		Search:          r.URL.Query().Get("q"),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := EntryListResponse{
		Entries: make([]EntryResponse, len(entries)),
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
	for i, e := range entries {
		resp.Entries[i] = toEntryResponse(e)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// PostEntryHandler handles POST /entries.
type PostEntryHandler struct {
	svc *appsvcs.Services
}

func NewPostEntryHandler(svc *appsvcs.Services) *PostEntryHandler {
	return &PostEntryHandler{svc: svc}
}

// Execute creates an entry.
//
//	@Summary	Create entry
//	@Tags		entries
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateEntryRequest	true	"Entry"
//	@Success	201		{object}	EntryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/entries [post]
func (h *PostEntryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CreateEntryRequest](w, r)
	if !ok {
		return
	}
	isReal := req.Real == nil || *req.Real

	entry, err := h.svc.Entry.Create(r.Context(), hh, req.Name, isReal)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toEntryResponse(entry))
}

// EntryHandler serves the single-entry routes under /entries/{id}.
type EntryHandler struct {
	svc *appsvcs.Services
}

func NewEntryHandler(svc *appsvcs.Services) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// Get returns one entry.
//
//	@Summary	Get entry
//	@Tags		entries
//	@Produce	json
//	@Param		id	path		string	true	"Entry ID"
//	@Success	200	{object}	EntryResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/entries/{id} [get]
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(r *http.Request, e entryRef) (*models.Entry, error) {
		return h.svc.Entry.Get(r.Context(), e.household, e.id)
	})
}

// Rename changes the entry name.
//
//	@Summary	Rename entry
//	@Tags		entries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Entry ID"
//	@Param		request	body		RenameEntryRequest	true	"New name"
//	@Success	200		{object}	EntryResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/entries/{id} [put]
func (h *EntryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RenameEntryRequest](w, r)
	if !ok {
		return
	}
	entry, err := h.svc.Entry.Rename(r.Context(), hh, id, req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEntryResponse(entry))
}

// Archive soft-deletes the entry.
//
//	@Summary	Archive entry
//	@Tags		entries
//	@Produce	json
//	@Param		id	path		string	true	"Entry ID"
//	@Success	200	{object}	EntryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/entries/{id}/archive [post]
func (h *EntryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(r *http.Request, e entryRef) (*models.Entry, error) {
		return h.svc.Entry.Archive(r.Context(), e.household, e.id)
	})
}

// Unarchive restores an archived entry.
//
//	@Summary	Unarchive entry
//	@Tags		entries
//	@Produce	json
//	@Param		id	path		string	true	"Entry ID"
//	@Success	200	{object}	EntryResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/entries/{id}/unarchive [post]
func (h *EntryHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, http.StatusOK, func(r *http.Request, e entryRef) (*models.Entry, error) {
		return h.svc.Entry.Unarchive(r.Context(), e.household, e.id)
	})
}

// Delete removes the entry and all of its items.
//
//	@Summary	Delete entry
//	@Tags		entries
//	@Param		id	path	string	true	"Entry ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/entries/{id} [delete]
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.Entry.Delete(r.Context(), hh, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type entryRef struct {
	household, id uuid.UUID
}

func (h *EntryHandler) run(w http.ResponseWriter, r *http.Request, status int, fn func(*http.Request, entryRef) (*models.Entry, error)) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	entry, err := fn(r, entryRef{household: hh, id: id})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, status, toEntryResponse(entry))
}
