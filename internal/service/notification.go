package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"protrack/internal/config"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// notificationService implements the NotificationService interface
type notificationService struct {
	notifRepo repositories.NotificationRepository
	logger    *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo repositories.NotificationRepository, logger *slog.Logger) services.NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		logger:    logger,
	}
}

// Create creates a notification
func (s *notificationService) Create(ctx context.Context, req *services.CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	n := &models.Notification{
		ID:                 uuid.NewString(),
		UserID:             req.UserID,
		Type:               req.Type,
		Title:              req.Title,
		Message:            req.Message,
		EventID:            req.EventID,
		BookedByUserID:     req.BookedByUserID,
		BookedByName:       req.BookedByName,
		BookedByProfileURL: req.BookedByProfileURL,
		InviteStatus:       req.InviteStatus,
		CreatedAt:          time.Now(),
	}

	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// ListByUser retrieves a user's notifications, newest first
func (s *notificationService) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrValidation)
	}
	return s.notifRepo.ListByUser(ctx, userID)
}

// Update changes read / inviteStatus
func (s *notificationService) Update(ctx context.Context, id string, req *services.UpdateNotificationRequest) (*models.Notification, error) {
	if req.InviteStatus != nil {
		switch *req.InviteStatus {
		case models.InvitePending, models.InviteAccepted, models.InviteDeclined:
		default:
			return nil, fmt.Errorf("%w: invalid invite status %q", domain.ErrValidation, *req.InviteStatus)
		}
	}

	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Read != nil {
		n.Read = *req.Read
	}
	if req.InviteStatus != nil {
		n.InviteStatus = req.InviteStatus
	}

	if err := s.notifRepo.Update(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// Delete removes a notification
func (s *notificationService) Delete(ctx context.Context, id string) error {
	return s.notifRepo.Delete(ctx, id)
}

// validateCreateRequest validates a create notification request
func (s *notificationService) validateCreateRequest(req *services.CreateNotificationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Type, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Message, validation.Length(0, config.MaxNotificationMessageLength)),
	)
}
