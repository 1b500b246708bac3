package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// eventService implements the EventService interface
type eventService struct {
	eventRepo repositories.EventRepository
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	logger    *slog.Logger
}

// NewEventService creates a new calendar-event service
func NewEventService(
	eventRepo repositories.EventRepository,
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.EventService {
	return &eventService{
		eventRepo: eventRepo,
		notifRepo: notifRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Create stores the event and fans out invites to the involved staff.
// Invite delivery is best-effort; the booking succeeds regardless.
func (s *eventService) Create(ctx context.Context, req *services.CreateEventRequest, bookedBy *models.User) (*models.CalendarEvent, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	event := &models.CalendarEvent{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(req.Title),
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		BookedService:    req.BookedService,
		StaffInvolvedIDs: req.StaffInvolvedIDs,
		CreatedAt:        time.Now(),
	}
	if event.StaffInvolvedIDs == nil {
		event.StaffInvolvedIDs = []string{}
	}
	if bookedBy != nil {
		event.BookedByID = &bookedBy.ID
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("calendar event created",
		"id", event.ID,
		"title", event.Title,
		"date", event.Date,
		"invitees", len(event.StaffInvolvedIDs),
	)

	s.sendInvites(ctx, event, bookedBy)

	return event, nil
}

// List retrieves all events decorated for the calendar page
func (s *eventService) List(ctx context.Context) ([]models.CalendarEventView, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(events))
	eventIDs := make([]string, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		userIDs = append(userIDs, e.StaffInvolvedIDs...)
		if e.BookedByID != nil {
			userIDs = append(userIDs, *e.BookedByID)
		}
	}

	summaries, err := s.userRepo.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	invites, err := s.notifRepo.ListInvitesByEvents(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	// eventID -> userID -> RSVP status
	statuses := make(map[string]map[string]string)
	for _, n := range invites {
		if n.EventID == nil || n.InviteStatus == nil {
			continue
		}
		if statuses[*n.EventID] == nil {
			statuses[*n.EventID] = make(map[string]string)
		}
		statuses[*n.EventID][n.UserID] = *n.InviteStatus
	}

	views := make([]models.CalendarEventView, 0, len(events))
	for _, e := range events {
		view := models.CalendarEventView{
			CalendarEvent:      e,
			StaffInvolvedUsers: []models.UserSummary{},
			InviteStatuses:     []models.InviteStatus{},
		}

		for _, id := range e.StaffInvolvedIDs {
			if summary, ok := summaries[id]; ok {
				view.StaffInvolvedUsers = append(view.StaffInvolvedUsers, summary)
			}

			status := models.InvitePending
			if st, ok := statuses[e.ID][id]; ok {
				status = st
			}
			view.InviteStatuses = append(view.InviteStatuses, models.InviteStatus{
				UserID: id,
				Status: status,
			})
		}

		if e.BookedByID != nil {
			if summary, ok := summaries[*e.BookedByID]; ok {
				view.BookedByUser = &summary
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// Delete removes an event
func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("calendar event deleted", "id", id)
	return nil
}

// sendInvites creates one event-invite notification per involved staff
// member, skipping the booker's own invite.
func (s *eventService) sendInvites(ctx context.Context, event *models.CalendarEvent, bookedBy *models.User) {
	when := event.Date
	if event.Time != nil && *event.Time != "" {
		when = fmt.Sprintf("%s at %s", event.Date, *event.Time)
	}

	pending := models.InvitePending
	for _, userID := range event.StaffInvolvedIDs {
		if bookedBy != nil && userID == bookedBy.ID {
			continue
		}

		n := &models.Notification{
			ID:           uuid.NewString(),
			UserID:       userID,
			Type:         models.NotifEventInvite,
			Title:        "Event Invitation",
			Message:      fmt.Sprintf("You have been invited to \"%s\" on %s.", event.Title, when),
			EventID:      &event.ID,
			InviteStatus: &pending,
			CreatedAt:    time.Now(),
		}
		if bookedBy != nil {
			n.BookedByUserID = &bookedBy.ID
			n.BookedByName = &bookedBy.FullName
			n.BookedByProfileURL = bookedBy.ProfileImageURL
		}

		if err := s.notifRepo.Create(ctx, n); err != nil {
			s.logger.Warn("event invite failed",
				"eventId", event.ID,
				"userId", userID,
				"error", err,
			)
		}
	}
}

// validateCreateRequest validates a calendar booking
func (s *eventService) validateCreateRequest(req *services.CreateEventRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
	)
}
