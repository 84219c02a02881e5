package handlers

import (
	"net/http"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// OrderRequest asks the butler to run reminders now.
type OrderRequest struct {
	Type   string   `json:"type"   validate:"required,oneof=item nightly location" example:"item"`
	Force  bool     `json:"force"                                                  example:"false"`
	Stores []string `json:"stores" validate:"omitempty,dive,notblank"`
} // @name OrderRequest

// OrderResponse acknowledges a placed order.
type OrderResponse struct {
	Tag string `json:"tag" example:"butler-item-550e8400-e29b-41d4-a716-446655440000"`
} // @name OrderResponse

// PostOrderHandler handles POST /butler/orders.
type PostOrderHandler struct {
	svc *butlersvcs.Services
}

func NewPostOrderHandler(svc *butlersvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places an order for the caller's household. The worker runs it.
//
//	@Summary	Place butler order
//	@Tags		butler
//	@Accept		json
//	@Produce	json
//	@Param		request	body		OrderRequest	true	"Order"
//	@Success	202		{object}	OrderResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/butler/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[OrderRequest](w, r)
	if !ok {
		return
	}
	order := models.Order{
		Type:        models.OrderType(req.Type),
		HouseholdID: hh,
		Force:       req.Force,
		Stores:      req.Stores,
	}
	if err := h.svc.Orders.Place(r.Context(), order); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, OrderResponse{Tag: order.Tag()})
}
