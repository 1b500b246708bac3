package services

import (
	"context"

	"protrack/internal/domain/models"
)

// CreateEventRequest represents a calendar booking
type CreateEventRequest struct {
	Title            string   `json:"title"`
	Date             string   `json:"date"`
	Time             *string  `json:"time"`
	Location         *string  `json:"location"`
	BookedService    *string  `json:"bookedService"`
	StaffInvolvedIDs []string `json:"staffInvolvedIds"`
}

// EventService defines calendar-event operations
type EventService interface {
	// Create stores the event and fans out event-invite notifications
	// to the involved staff (best-effort).
	Create(ctx context.Context, req *CreateEventRequest, bookedBy *models.User) (*models.CalendarEvent, error)

	// List retrieves all events decorated with user summaries and
	// per-invitee RSVP statuses.
	List(ctx context.Context) ([]models.CalendarEventView, error)

	// Delete removes an event
	Delete(ctx context.Context, id string) error
}
