package handlers

import (
	"net/http"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
	"github.com/pyamsoft/fridge/services/butler/domain/repositories"
)

// NotificationHandler serves the household inbox.
type NotificationHandler struct {
	svc *butlersvcs.Services
}

func NewNotificationHandler(svc *butlersvcs.Services) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List returns open notifications, newest first.
//
//	@Summary	List notifications
//	@Tags		notifications
//	@Produce	json
//	@Param		unread	query		bool	false	"Only unread"
//	@Param		limit	query		int		false	"Page size (1-100)"
//	@Param		offset	query		int		false	"Page offset"
//	@Success	200		{object}	NotificationListResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	page, err := httpx.PageFromQuery(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	unread, err := httpx.QueryBool(r, "unread")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out, total, err := h.svc.Notifications.List(r.Context(), hh, repositories.NotificationQuery{
		Limit:      page.Limit,
		Offset:     page.Offset,
		UnreadOnly: unread,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	resp := NotificationListResponse{
		Notifications: make([]NotificationResponse, len(out)),
		Total:         total,
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	for i, n := range out {
		resp.Notifications[i] = toNotificationResponse(n)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// MarkRead marks a notification read.
//
//	@Summary	Mark notification read
//	@Tags		notifications
//	@Produce	json
//	@Param		id	path		string	true	"Notification ID"
//	@Success	200	{object}	NotificationResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	n, err := h.svc.Notifications.MarkRead(r.Context(), hh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toNotificationResponse(n))
}

// Dismiss removes a notification from the inbox.
//
//	@Summary	Dismiss notification
//	@Tags		notifications
//	@Param		id	path	string	true	"Notification ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.Notifications.Dismiss(r.Context(), hh, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
