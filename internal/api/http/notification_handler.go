package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lendloop-backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	notes, err := h.notificationService.GetNotifications(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, notes)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.MarkAsRead(r.Context(), userIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}
