package handler

import (
	"log/slog"
	"net/http"

	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// EventHandler handles calendar-event HTTP requests
type EventHandler struct {
	eventService services.EventService
	userService  services.UserService
	logger       *slog.Logger
}

// NewEventHandler creates a new calendar-event handler
func NewEventHandler(eventService services.EventService, userService services.UserService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		userService:  userService,
		logger:       logger,
	}
}

// ListEvents retrieves all events decorated for the calendar page
// GET /api/calendar-events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}

// CreateEvent stores a booking and invites the involved staff
// POST /api/calendar-events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req services.CreateEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The booker is optional; anonymous bookings simply send no invites
	// attributed to a person.
	var bookedBy *models.User
	if userID := httputil.GetUserID(r); userID != "" {
		user, err := h.userService.GetUser(r.Context(), userID)
		if err != nil {
			handleError(w, err)
			return
		}
		bookedBy = user
	}

	event, err := h.eventService.Create(r.Context(), &req, bookedBy)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, event)
}

// DeleteEvent removes an event
// DELETE /api/calendar-events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
