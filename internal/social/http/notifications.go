package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

type NotificationsHandler struct {
	Dispatcher *service.NotificationDispatcher
}

// HandleList godoc
//
//	@Summary	List notifications, newest first
//	@Tags		Notifications
//	@Produce	json
//	@Param		unread	query		bool	false	"Only unread"
//	@Param		limit	query		int		false	"Max results (default 50)"
//	@Success	200		{object}	socialsdk.NotificationsResponse
//	@Security	BearerAuth
//	@Router		/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ns, err := h.Dispatcher.List(r.Context(), httpx.UserIDFromContext(r.Context()), limit, unreadOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.NotificationsResponse{Notifications: make([]socialsdk.Notification, 0, len(ns))}
	for _, n := range ns {
		resp.Notifications = append(resp.Notifications, notificationView(n))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleUnreadCount godoc
//
//	@Summary	Unread notification count
//	@Tags		Notifications
//	@Produce	json
//	@Success	200	{object}	socialsdk.UnreadCountResponse
//	@Security	BearerAuth
//	@Router		/v1/notifications/unread_count [get].
func (h *NotificationsHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Dispatcher.UnreadCount(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, socialsdk.UnreadCountResponse{Count: count})
}

// HandleMarkRead godoc
//
//	@Summary		Mark notifications read
//	@Description	Ids not owned by the caller are ignored.
//	@Tags			Notifications
//	@Accept			json
//	@Param			request	body	socialsdk.MarkReadRequest	true	"Notification ids"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/notifications/read [post].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	if err := h.Dispatcher.MarkRead(r.Context(), httpx.UserIDFromContext(r.Context()), req.IDs); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMarkAllRead godoc
//
//	@Summary	Mark every notification read
//	@Tags		Notifications
//	@Success	204
//	@Security	BearerAuth
//	@Router		/v1/notifications/read_all [post].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Dispatcher.MarkAllRead(r.Context(), httpx.UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary	Delete one notification
//	@Tags		Notifications
//	@Param		id	path	string	true	"Notification id"
//	@Success	204
//	@Failure	404	{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/notifications/{id} [delete].
func (h *NotificationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if err := h.Dispatcher.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
