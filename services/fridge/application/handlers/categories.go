package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	appsvcs "github.com/pyamsoft/fridge/services/fridge/application/services"
	"github.com/pyamsoft/fridge/services/fridge/domain/repositories"
)

// CategoryResponse is a category with the household's live item count.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"Dairy"`
	Thumbnail string    `json:"thumbnail"  example:"dairy.png"`
	IsDefault bool      `json:"is_default" example:"true"`
	ItemCount int       `json:"item_count" example:"4"`
} // @name CategoryResponse

// CategoryHandler serves /categories.
type CategoryHandler struct {
	svc *appsvcs.Services
}

func NewCategoryHandler(svc *appsvcs.Services) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List returns every category.
//
//	@Summary	List categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}		CategoryResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	cats, err := h.svc.Category.List(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{
			ID:        c.ID,
			Name:      c.Name.String(),
			Thumbnail: c.Thumbnail,
			IsDefault: c.IsDefault,
			ItemCount: c.ItemCount,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Items returns a page of live items in the category.
//
//	@Summary	Category items
//	@Tags		categories
//	@Produce	json
//	@Param		id		path		string	true	"Category ID"
//	@Param		limit	query		int		false	"Page size (1-100)"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{object}	ItemListResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/categories/{id}/items [get]
func (h *CategoryHandler) Items(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	page, err := httpx.PageFromQuery(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	items, total, err := h.svc.Category.Items(r.Context(), hh, id, repositories.QueryOpts{Limit: page.Limit, Offset: page.Offset})
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
