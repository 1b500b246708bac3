package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// NotificationRepository defines data access operations for notifications
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, n *models.Notification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id string) (*models.Notification, error)

	// ListByUser retrieves a user's notifications, newest first
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)

	// ListInvitesByEvents returns event-invite notifications for a set of
	// event ids, for resolving RSVP statuses.
	ListInvitesByEvents(ctx context.Context, eventIDs []string) ([]models.Notification, error)

	// Update persists read / inviteStatus changes
	Update(ctx context.Context, n *models.Notification) error

	// Delete removes a notification
	Delete(ctx context.Context, id string) error
}
