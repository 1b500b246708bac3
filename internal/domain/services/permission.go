package services

import (
	"context"

	"protrack/internal/domain/models"
)

// PermissionService gates who may mutate a project's documents and
// manages the request/approve/decline/revoke lifecycle.
type PermissionService interface {
	// IsOwnerOrAdmin reports whether the user is the assigned staff
	// member (by id) or an admin. Owners and admins bypass the
	// state machine entirely.
	IsOwnerOrAdmin(user *models.User, project *models.Project) bool

	// IsAuthorizedToEdit reports whether the user may enter edit mode:
	// owner/admin, or an approved editor of the project.
	IsAuthorizedToEdit(ctx context.Context, user *models.User, project *models.Project) (bool, error)

	// RequestEdit records a pending edit request for the user and
	// notifies the project assignee. Idempotent. Fails with a validation
	// error when the user is already authorized or the project has no
	// resolvable assignee.
	RequestEdit(ctx context.Context, projectID string, user *models.User) error

	// AcceptEditRequest moves userID from pending to approved and sends
	// an approval notification. Only the owner or an admin may call it.
	AcceptEditRequest(ctx context.Context, projectID string, actor *models.User, userID string) error

	// DeclineEditRequest removes userID from pending only. Idempotent.
	DeclineEditRequest(ctx context.Context, projectID string, actor *models.User, userID string) error

	// RevokeEditAccess removes userID from approved editors.
	RevokeEditAccess(ctx context.Context, projectID string, actor *models.User, userID string) error

	// ListPermissions returns the pending and approved lists joined with
	// user display fields.
	ListPermissions(ctx context.Context, projectID string) (*models.ProjectPermissions, error)
}
