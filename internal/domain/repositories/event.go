package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// EventRepository defines data access operations for calendar events
type EventRepository interface {
	// Create creates a new calendar event
	Create(ctx context.Context, event *models.CalendarEvent) error

	// List retrieves all events, newest first
	List(ctx context.Context) ([]models.CalendarEvent, error)

	// Delete removes an event
	Delete(ctx context.Context, id string) error
}
