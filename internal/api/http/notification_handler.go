package http

import (
	"net/http"
	"strconv"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	limit := queryInt32(r, "limit", 50)
	offset := queryInt32(r, "offset", 0)

	items, err := h.notifications.List(r.Context(), user.ID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", items)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), id, user.ID); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "notification marked as read", nil)
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || value < 0 {
		return fallback
	}
	return int32(value)
}
