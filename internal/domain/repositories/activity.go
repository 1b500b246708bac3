package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// ActivityRepository defines data access operations for activity logs
type ActivityRepository interface {
	// Create appends an activity-log row
	Create(ctx context.Context, entry *models.ActivityLog) error

	// ListByResourceType retrieves log rows of one resource type
	ListByResourceType(ctx context.Context, resourceType string) ([]models.ActivityLog, error)
}
