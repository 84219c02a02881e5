package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/pkg/auth"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"notification not found"`
} // @name ButlerErrorResponse

// NotificationResponse describes one inbox entry.
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"                 example:"123e4567-e89b-12d3-a456-426614174000"`
	Kind      string     `json:"kind"               example:"expired"`
	EntryID   *uuid.UUID `json:"entry_id,omitempty"`
	Title     string     `json:"title"              example:"Expiration warning for My Fridge"`
	Body      string     `json:"body"               example:"2 items have passed expiration!"`
	CreatedAt time.Time  `json:"created_at"         example:"2024-01-15T10:30:00Z"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
} // @name NotificationResponse

// NotificationListResponse is a page of the inbox.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"  example:"2"`
	Limit         int                    `json:"limit"  example:"50"`
	Offset        int                    `json:"offset" example:"0"`
} // @name NotificationListResponse

func householdID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := auth.HouseholdIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return uuid.Nil, false
	}
	return id, true
}

func toNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind.String(),
		EntryID:   n.EntryID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}
