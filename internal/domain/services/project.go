package services

import (
	"context"

	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Kind              models.ProjectKind `json:"kind"`
	Title             string             `json:"projectTitle"`
	Firm              *string            `json:"firm"`
	TypeOfFirm        *string            `json:"typeOfFirm"`
	Location          *string            `json:"location"`
	Beneficiaries     *string            `json:"beneficiaries"`
	ProgramFunding    *string            `json:"programFunding"`
	Categories        []string           `json:"categories"`
	Status            *string            `json:"status"`
	ApprovedAmount    *float64           `json:"approvedAmount"`
	ReleasedAmount    *float64           `json:"releasedAmount"`
	ProjectDuration   *string            `json:"projectDuration"`
	StaffAssignedID   *string            `json:"staffAssignedId"`
	Year              *string            `json:"year"`
	DateOfApproval    *string            `json:"dateOfApproval"`
}

// UpdateProjectRequest carries the mutable project fields. Pointer fields
// left nil are not changed (JSON merge-patch style).
type UpdateProjectRequest struct {
	Title           *string   `json:"projectTitle"`
	Firm            *string   `json:"firm"`
	TypeOfFirm      *string   `json:"typeOfFirm"`
	Location        *string   `json:"location"`
	Beneficiaries   *string   `json:"beneficiaries"`
	ProgramFunding  *string   `json:"programFunding"`
	Categories      []string  `json:"categories"`
	Status          *string   `json:"status"`
	ApprovedAmount  *float64  `json:"approvedAmount"`
	ReleasedAmount  *float64  `json:"releasedAmount"`
	ProjectDuration *string   `json:"projectDuration"`
	StaffAssignedID *string   `json:"staffAssignedId"`
	Year            *string   `json:"year"`
	DateOfApproval  *string   `json:"dateOfApproval"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project, generating its code
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project with its permission lists populated
	GetProject(ctx context.Context, id string, kind models.ProjectKind) (*models.Project, error)

	// ListProjects retrieves projects matching the filter
	ListProjects(ctx context.Context, filter repositories.ProjectFilter) ([]models.Project, error)

	// UpdateProject applies a partial update
	UpdateProject(ctx context.Context, id string, kind models.ProjectKind, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject removes the project together with its documents and
	// editor rows in one transaction
	DeleteProject(ctx context.Context, id string, kind models.ProjectKind) error
}
