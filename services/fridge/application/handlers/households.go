package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	appsvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
)

// CreateHouseholdRequest is the request body for POST /households.
type CreateHouseholdRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=255" example:"Home"`
	Timezone string `json:"timezone" validate:"omitempty,timezone"        example:"Europe/Berlin"`
} // @name CreateHouseholdRequest

// PostHouseholdHandler handles POST /households.
type PostHouseholdHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
}

func NewPostHouseholdHandler(svc *appsvcs.Services, store sessions.Store) *PostHouseholdHandler {
	return &PostHouseholdHandler{svc: svc, store: store}
}

// Execute creates a household and binds it to the caller's session.
//
//	@Summary		Create household
//	@Description	Creates a household and starts a session for it
//	@Tags			households
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateHouseholdRequest	true	"Household"
//	@Success		201		{object}	HouseholdResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/households [post]
func (h *PostHouseholdHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateHouseholdRequest](w, r)
	if !ok {
		return
	}

	household, err := h.svc.Household.Create(r.Context(), req.Name, req.Timezone)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := auth.StartSession(h.store, w, r, household.ID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toHouseholdResponse(household))
}

// GetCurrentHouseholdHandler handles GET /households/me.
type GetCurrentHouseholdHandler struct {
	svc *appsvcs.Services
}

func NewGetCurrentHouseholdHandler(svc *appsvcs.Services) *GetCurrentHouseholdHandler {
	return &GetCurrentHouseholdHandler{svc: svc}
}

// Execute returns the session's household.
//
//	@Summary	Current household
//	@Tags		households
//	@Produce	json
//	@Success	200	{object}	HouseholdResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/households/me [get]
func (h *GetCurrentHouseholdHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	household, err := h.svc.Household.Get(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toHouseholdResponse(household))
}

// DeleteSessionHandler handles DELETE /session.
type DeleteSessionHandler struct {
	store sessions.Store
}

func NewDeleteSessionHandler(store sessions.Store) *DeleteSessionHandler {
	return &DeleteSessionHandler{store: store}
}

// Execute logs the caller out.
//
//	@Summary	Log out
//	@Tags		households
//	@Success	204
//	@Failure	401	{object}	ErrorResponse
//	@Router		/session [delete]
func (h *DeleteSessionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.EndSession(h.store, w, r); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
