package handler

import (
	"log/slog"
	"net/http"

	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifService services.NotificationService
	logger       *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService services.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		logger:       logger,
	}
}

// CreateNotification creates a notification
// POST /api/notifications
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req services.CreateNotificationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := h.notifService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, n)
}

// ListNotifications retrieves a user's notifications, newest first.
// The userId query parameter falls back to the authenticated identity.
// GET /api/notifications?userId=
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = httputil.GetUserID(r)
	}
	if userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	notifications, err := h.notifService.ListByUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notifications)
}

// UpdateNotification changes the read flag or RSVP status
// PATCH /api/notifications/{id}
func (h *NotificationHandler) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateNotificationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	n, err := h.notifService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, n)
}

// DeleteNotification removes a notification
// DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifService.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted successfully"})
}
