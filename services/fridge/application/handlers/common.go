package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"entry not found"`
} // @name ErrorResponse

// HouseholdResponse describes a household.
type HouseholdResponse struct {
	ID        uuid.UUID `json:"id"         example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string    `json:"name"       example:"Home"`
	Timezone  string    `json:"timezone"   example:"Europe/Berlin"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name HouseholdResponse

// EntryResponse describes an entry.
type EntryResponse struct {
	ID         uuid.UUID  `json:"id"                    example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string     `json:"name"                  example:"My Fridge"`
	CreatedAt  time.Time  `json:"created_at"            example:"2024-01-15T10:30:00Z"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	IsReal     bool       `json:"is_real"               example:"true"`
} // @name EntryResponse

// EntryListResponse is a page of entries.
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"  example:"3"`
	Limit   int             `json:"limit"  example:"50"`
	Offset  int             `json:"offset" example:"0"`
} // @name EntryListResponse

// ItemResponse describes an item. expires_on is a calendar date.
type ItemResponse struct {
	ID          uuid.UUID  `json:"id"                     example:"123e4567-e89b-12d3-a456-426614174000"`
	EntryID     uuid.UUID  `json:"entry_id"               example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string     `json:"name"                   example:"Milk"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Presence    string     `json:"presence"               example:"HAVE"`
	Count       int        `json:"count"                  example:"1"`
	CreatedAt   time.Time  `json:"created_at"             example:"2024-01-15T10:30:00Z"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	ExpiresOn   *string    `json:"expires_on,omitempty"   example:"2024-01-20"`
	ConsumedAt  *time.Time `json:"consumed_at,omitempty"`
	SpoiledAt   *time.Time `json:"spoiled_at,omitempty"`
	IsReal      bool       `json:"is_real"                example:"true"`
} // @name ItemResponse

// ItemListResponse is a page of items.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"  example:"12"`
	Limit  int            `json:"limit"  example:"50"`
	Offset int            `json:"offset" example:"0"`
} // @name ItemListResponse

func householdID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.HouseholdIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

func toHouseholdResponse(h *models.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:        h.ID,
		Name:      h.Name.String(),
		Timezone:  h.Timezone,
		CreatedAt: h.CreatedAt,
	}
}

func toEntryResponse(e *models.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Name:       e.Name.String(),
		CreatedAt:  e.CreatedAt,
		ArchivedAt: e.ArchivedAt,
		IsReal:     e.IsReal,
	}
}

func toItemResponse(i *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID,
		EntryID:     i.EntryID,
		Name:        i.Name.String(),
		CategoryID:  i.CategoryID,
		Presence:    i.Presence.String(),
		Count:       i.Count,
		CreatedAt:   i.CreatedAt,
		PurchasedAt: i.PurchasedAt,
		ConsumedAt:  i.ConsumedAt,
		SpoiledAt:   i.SpoiledAt,
		IsReal:      i.IsReal,
	}
	if i.ExpiresAt != nil {
		d := i.ExpiresAt.Format(time.DateOnly)
		resp.ExpiresOn = &d
	}
	return resp
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}
