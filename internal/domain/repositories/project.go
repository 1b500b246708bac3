package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Kind   models.ProjectKind
	Status string // exact match, already upper-cased
	Search string // substring over title, firm, code (case-insensitive)
}

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID (any kind)
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List retrieves projects matching the filter.
	// SETUP projects are ordered by code ascending, CEST by creation descending.
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)

	// Update persists changed fields of a project
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project row. Documents and editor rows are removed
	// by the service inside one transaction.
	Delete(ctx context.Context, id string) error

	// NextCode returns the next zero-padded project code for a kind
	// (max existing numeric code + 1).
	NextCode(ctx context.Context, kind models.ProjectKind) (string, error)
}
