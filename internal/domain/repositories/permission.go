package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// PermissionRepository manages the project_editors join table.
// Each transition is a single atomic statement so concurrent
// accept/decline/revoke calls cannot lose each other's updates.
type PermissionRepository interface {
	// Get returns the permission row for (projectID, userID), or
	// ErrNotFound when no relationship exists.
	Get(ctx context.Context, projectID, userID string) (*models.EditPermission, error)

	// Request inserts a PENDING row. Idempotent: an existing row of
	// either state is left untouched (ON CONFLICT DO NOTHING).
	Request(ctx context.Context, projectID, userID string) error

	// Approve upserts the row to APPROVED. Idempotent.
	Approve(ctx context.Context, projectID, userID string) error

	// DeletePending removes a PENDING row only. Removing an absent or
	// already-approved row is a no-op.
	DeletePending(ctx context.Context, projectID, userID string) error

	// DeleteApproved removes an APPROVED row. No-op when absent.
	DeleteApproved(ctx context.Context, projectID, userID string) error

	// ListByProject returns all permission rows of a project,
	// pending first, oldest request first within a state.
	ListByProject(ctx context.Context, projectID string) ([]models.EditPermission, error)

	// DeleteAllByProject removes every permission row of a project
	DeleteAllByProject(ctx context.Context, projectID string) error
}
