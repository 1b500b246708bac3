package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"protrack/internal/config"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	permRepo    repositories.PermissionRepository
	docRepo     repositories.DocumentRepository
	userRepo    repositories.UserRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	permRepo repositories.PermissionRepository,
	docRepo repositories.DocumentRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		permRepo:    permRepo,
		docRepo:     docRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProject creates a new project, generating its code
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	code, err := s.projectRepo.NextCode(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &models.Project{
		ID:              uuid.NewString(),
		Kind:            req.Kind,
		Code:            code,
		Title:           strings.TrimSpace(req.Title),
		Firm:            req.Firm,
		TypeOfFirm:      req.TypeOfFirm,
		Location:        req.Location,
		Beneficiaries:   req.Beneficiaries,
		ProgramFunding:  req.ProgramFunding,
		Categories:      req.Categories,
		Status:          normalizeStatus(req.Status),
		ApprovedAmount:  req.ApprovedAmount,
		ReleasedAmount:  req.ReleasedAmount,
		ProjectDuration: req.ProjectDuration,
		Year:            req.Year,
		DateOfApproval:  req.DateOfApproval,
		CreatedAt:       now,
		UpdatedAt:       now,

		PendingEditRequests: []string{},
		ApprovedEditors:     []string{},
	}

	if err := s.setAssignee(ctx, project, req.StaffAssignedID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"kind", project.Kind,
		"code", project.Code,
		"title", project.Title,
	)

	return project, nil
}

// GetProject retrieves a project with its permission lists populated
func (s *projectService) GetProject(ctx context.Context, id string, kind models.ProjectKind) (*models.Project, error) {
	project, err := s.getProjectOfKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if err := s.populatePermissions(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves projects matching the filter
func (s *projectService) ListProjects(ctx context.Context, filter repositories.ProjectFilter) ([]models.Project, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	filter.Search = strings.TrimSpace(filter.Search)

	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		projects[i].PendingEditRequests = []string{}
		projects[i].ApprovedEditors = []string{}
	}

	return projects, nil
}

// UpdateProject applies a partial update
func (s *projectService) UpdateProject(ctx context.Context, id string, kind models.ProjectKind, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.getProjectOfKind(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > config.MaxProjectTitleLength {
			return nil, fmt.Errorf("%w: projectTitle must be 1-%d characters", domain.ErrValidation, config.MaxProjectTitleLength)
		}
		project.Title = title
	}
	if req.Firm != nil {
		project.Firm = req.Firm
	}
	if req.TypeOfFirm != nil {
		project.TypeOfFirm = req.TypeOfFirm
	}
	if req.Location != nil {
		project.Location = req.Location
	}
	if req.Beneficiaries != nil {
		project.Beneficiaries = req.Beneficiaries
	}
	if req.ProgramFunding != nil {
		project.ProgramFunding = req.ProgramFunding
	}
	if req.Categories != nil {
		project.Categories = req.Categories
	}
	if req.Status != nil {
		project.Status = normalizeStatus(req.Status)
	}
	if req.ApprovedAmount != nil {
		project.ApprovedAmount = req.ApprovedAmount
	}
	if req.ReleasedAmount != nil {
		project.ReleasedAmount = req.ReleasedAmount
	}
	if req.ProjectDuration != nil {
		project.ProjectDuration = req.ProjectDuration
	}
	if req.StaffAssignedID != nil {
		if err := s.setAssignee(ctx, project, req.StaffAssignedID); err != nil {
			return nil, err
		}
	}
	if req.Year != nil {
		project.Year = req.Year
	}
	if req.DateOfApproval != nil {
		project.DateOfApproval = req.DateOfApproval
	}

	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"kind", project.Kind,
	)

	if err := s.populatePermissions(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project, its documents and its editor rows
// in one transaction.
func (s *projectService) DeleteProject(ctx context.Context, id string, kind models.ProjectKind) error {
	if _, err := s.getProjectOfKind(ctx, id, kind); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.DeleteAllByProject(txCtx, id); err != nil {
			return err
		}
		if err := s.permRepo.DeleteAllByProject(txCtx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"kind", kind,
	)

	return nil
}

// getProjectOfKind loads a project and checks it belongs to the expected
// program; the two programs expose separate API prefixes.
func (s *projectService) getProjectOfKind(ctx context.Context, id string, kind models.ProjectKind) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Kind != kind {
		return nil, fmt.Errorf("%s project %s: %w", kind, id, domain.ErrNotFound)
	}
	return project, nil
}

// setAssignee resolves the assignee user and stores both the id and the
// denormalized display fields the dashboards render.
func (s *projectService) setAssignee(ctx context.Context, project *models.Project, assigneeID *string) error {
	if assigneeID == nil || *assigneeID == "" {
		project.StaffAssignedID = nil
		project.StaffAssignedName = nil
		project.AssigneeProfile = nil
		return nil
	}

	assignee, err := s.userRepo.GetByID(ctx, *assigneeID)
	if err != nil {
		return err
	}

	project.StaffAssignedID = &assignee.ID
	project.StaffAssignedName = &assignee.FullName
	project.AssigneeProfile = assignee.ProfileImageURL
	return nil
}

// populatePermissions fills the computed editor id arrays
func (s *projectService) populatePermissions(ctx context.Context, project *models.Project) error {
	perms, err := s.permRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}

	project.PendingEditRequests = []string{}
	project.ApprovedEditors = []string{}
	for _, p := range perms {
		switch p.State {
		case models.EditPending:
			project.PendingEditRequests = append(project.PendingEditRequests, p.UserID)
		case models.EditApproved:
			project.ApprovedEditors = append(project.ApprovedEditors, p.UserID)
		}
	}

	return nil
}

// normalizeStatus upper-cases a status value, keeping nil as nil
func normalizeStatus(status *string) *string {
	if status == nil {
		return nil
	}
	normalized := strings.ToUpper(strings.TrimSpace(*status))
	return &normalized
}

// validateCreateRequest validates a create project request
func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Kind, validation.Required, validation.By(validateKind)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxProjectTitleLength)),
	)
}

// validateKind checks for a known program kind
func validateKind(value interface{}) error {
	kind, ok := value.(models.ProjectKind)
	if !ok || !kind.Valid() {
		return fmt.Errorf("kind must be SETUP or CEST")
	}
	return nil
}
