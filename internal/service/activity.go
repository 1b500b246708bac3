package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// activityLogger implements the ActivityLogger interface.
// Entries are best-effort: a failed insert is logged and swallowed so
// audit logging never fails the operation being audited.
type activityLogger struct {
	activityRepo repositories.ActivityRepository
	logger       *slog.Logger
}

// NewActivityLogger creates a new best-effort activity logger
func NewActivityLogger(activityRepo repositories.ActivityRepository, logger *slog.Logger) services.ActivityLogger {
	return &activityLogger{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Record appends an activity-log row
func (l *activityLogger) Record(ctx context.Context, entry *models.ActivityLog) {
	if entry.UserID == "" {
		// Anonymous actions are not audited
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := l.activityRepo.Create(ctx, entry); err != nil {
		l.logger.Warn("activity log failed",
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"error", err,
		)
	}
}
