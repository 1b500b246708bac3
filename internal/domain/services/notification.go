package services

import (
	"context"

	"protrack/internal/domain/models"
)

// CreateNotificationRequest represents a new notification
type CreateNotificationRequest struct {
	UserID             string  `json:"userId"`
	Type               string  `json:"type"`
	Title              string  `json:"title"`
	Message            string  `json:"message"`
	EventID            *string `json:"eventId"`
	BookedByUserID     *string `json:"bookedByUserId"`
	BookedByName       *string `json:"bookedByName"`
	BookedByProfileURL *string `json:"bookedByProfileUrl"`
	InviteStatus       *string `json:"inviteStatus"`
}

// UpdateNotificationRequest carries the mutable notification fields
type UpdateNotificationRequest struct {
	Read         *bool   `json:"read"`
	InviteStatus *string `json:"inviteStatus"`
}

// NotificationService defines notification operations
type NotificationService interface {
	// Create creates a notification
	Create(ctx context.Context, req *CreateNotificationRequest) (*models.Notification, error)

	// ListByUser retrieves a user's notifications, newest first
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)

	// Update changes read / inviteStatus
	Update(ctx context.Context, id string, req *UpdateNotificationRequest) (*models.Notification, error)

	// Delete removes a notification
	Delete(ctx context.Context, id string) error
}
