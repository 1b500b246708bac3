package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// permissionService implements the PermissionService interface
type permissionService struct {
	permRepo      repositories.PermissionRepository
	projectRepo   repositories.ProjectRepository
	userRepo      repositories.UserRepository
	notifications services.NotificationService
	logger        *slog.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(
	permRepo repositories.PermissionRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	notifications services.NotificationService,
	logger *slog.Logger,
) services.PermissionService {
	return &permissionService{
		permRepo:      permRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// IsOwnerOrAdmin reports whether the user is the assigned staff member or
// an admin. The check is by user id: display names are not unique enough
// to hang authorization on.
func (s *permissionService) IsOwnerOrAdmin(user *models.User, project *models.Project) bool {
	if user == nil || project == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	return project.StaffAssignedID != nil && *project.StaffAssignedID == user.ID
}

// IsAuthorizedToEdit reports whether the user may enter edit mode
func (s *permissionService) IsAuthorizedToEdit(ctx context.Context, user *models.User, project *models.Project) (bool, error) {
	if s.IsOwnerOrAdmin(user, project) {
		return true, nil
	}

	perm, err := s.permRepo.Get(ctx, project.ID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return perm.State == models.EditApproved, nil
}

// RequestEdit records a pending edit request and notifies the assignee
func (s *permissionService) RequestEdit(ctx context.Context, projectID string, user *models.User) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	authorized, err := s.IsAuthorizedToEdit(ctx, user, project)
	if err != nil {
		return err
	}
	if authorized {
		return fmt.Errorf("%w: user already has edit access", domain.ErrValidation)
	}

	assignee, err := s.resolveAssignee(ctx, project)
	if err != nil {
		return err
	}

	// Idempotent: a second request while one is pending is a no-op
	if err := s.permRepo.Request(ctx, projectID, user.ID); err != nil {
		return err
	}

	s.logger.Info("edit access requested",
		"project_id", projectID,
		"user_id", user.ID,
	)

	s.notify(ctx, assignee.ID, project, user,
		"Edit Access Request",
		fmt.Sprintf("%s is requesting edit access to %s project %q", user.FullName, project.Kind, project.Title),
	)

	return nil
}

// AcceptEditRequest moves userID from pending to approved
func (s *permissionService) AcceptEditRequest(ctx context.Context, projectID string, actor *models.User, userID string) error {
	project, err := s.requireManager(ctx, projectID, actor)
	if err != nil {
		return err
	}

	if err := s.permRepo.Approve(ctx, projectID, userID); err != nil {
		return err
	}

	s.logger.Info("edit access approved",
		"project_id", projectID,
		"user_id", userID,
		"actor_id", actor.ID,
	)

	s.notify(ctx, userID, project, actor,
		"Edit Access Approved",
		fmt.Sprintf("Your edit access request for %s project %q has been approved by %s!", project.Kind, project.Title, actor.FullName),
	)

	return nil
}

// DeclineEditRequest removes userID from pending only. Declining a
// request that is already gone does not error.
func (s *permissionService) DeclineEditRequest(ctx context.Context, projectID string, actor *models.User, userID string) error {
	project, err := s.requireManager(ctx, projectID, actor)
	if err != nil {
		return err
	}

	if err := s.permRepo.DeletePending(ctx, projectID, userID); err != nil {
		return err
	}

	s.logger.Info("edit request declined",
		"project_id", projectID,
		"user_id", userID,
		"actor_id", actor.ID,
	)

	s.notify(ctx, userID, project, actor,
		"Edit Access Declined",
		fmt.Sprintf("Your edit access request for %s project %q has been declined by %s.", project.Kind, project.Title, actor.FullName),
	)

	return nil
}

// RevokeEditAccess removes userID from approved editors
func (s *permissionService) RevokeEditAccess(ctx context.Context, projectID string, actor *models.User, userID string) error {
	project, err := s.requireManager(ctx, projectID, actor)
	if err != nil {
		return err
	}

	if err := s.permRepo.DeleteApproved(ctx, projectID, userID); err != nil {
		return err
	}

	s.logger.Info("edit access revoked",
		"project_id", projectID,
		"user_id", userID,
		"actor_id", actor.ID,
	)

	s.notify(ctx, userID, project, actor,
		"Edit Access Revoked",
		fmt.Sprintf("Your edit access for %s project %q has been revoked by %s.", project.Kind, project.Title, actor.FullName),
	)

	return nil
}

// ListPermissions returns the pending and approved lists with user display fields
func (s *permissionService) ListPermissions(ctx context.Context, projectID string) (*models.ProjectPermissions, error) {
	perms, err := s.permRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.UserID)
	}

	summaries, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := &models.ProjectPermissions{
		Pending:  []models.EditorInfo{},
		Approved: []models.EditorInfo{},
	}
	for _, p := range perms {
		info := models.EditorInfo{
			UserID:      p.UserID,
			RequestedAt: p.RequestedAt,
		}
		if summary, ok := summaries[p.UserID]; ok {
			info.UserName = summary.FullName
			info.UserProfileURL = summary.ProfileImageURL
		}

		switch p.State {
		case models.EditPending:
			result.Pending = append(result.Pending, info)
		case models.EditApproved:
			result.Approved = append(result.Approved, info)
		}
	}

	return result, nil
}

// requireManager loads the project and verifies the actor may manage its
// permissions (owner or admin).
func (s *permissionService) requireManager(ctx context.Context, projectID string, actor *models.User) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !s.IsOwnerOrAdmin(actor, project) {
		return nil, fmt.Errorf("%w: only the assignee or an admin can manage edit access", domain.ErrForbidden)
	}

	return project, nil
}

// resolveAssignee finds the user who should receive edit requests.
// Projects carry the assignee id; older rows may only have the display
// name, so that is tried second.
func (s *permissionService) resolveAssignee(ctx context.Context, project *models.Project) (*models.User, error) {
	if project.StaffAssignedID != nil {
		assignee, err := s.userRepo.GetByID(ctx, *project.StaffAssignedID)
		if err == nil {
			return assignee, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if project.StaffAssignedName != nil && *project.StaffAssignedName != "" {
		assignee, err := s.userRepo.GetByFullName(ctx, *project.StaffAssignedName)
		if err == nil {
			return assignee, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: project assignee not found", domain.ErrValidation)
}

// notify sends a permission notification. Failures are logged and
// swallowed: the permission change has already been committed and is
// never rolled back for a missed notification.
func (s *permissionService) notify(ctx context.Context, toUserID string, project *models.Project, from *models.User, title, message string) {
	_, err := s.notifications.Create(ctx, &services.CreateNotificationRequest{
		UserID:             toUserID,
		Type:               models.NotifCestEditRequest,
		Title:              title,
		Message:            message,
		EventID:            &project.ID,
		BookedByUserID:     &from.ID,
		BookedByName:       &from.FullName,
		BookedByProfileURL: from.ProfileImageURL,
	})
	if err != nil {
		s.logger.Warn("permission notification failed",
			"project_id", project.ID,
			"to_user_id", toUserID,
			"error", err,
		)
	}
}
