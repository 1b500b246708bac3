package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// DocumentRepository defines data access operations for uploaded documents
type DocumentRepository interface {
	// Create stores a new document including its binary payload
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a full document including the payload
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetMetaByID retrieves a document without touching the payload column
	GetMetaByID(ctx context.Context, id string) (*models.DocumentMeta, error)

	// ListByProject lists document metadata for a project, newest first
	ListByProject(ctx context.Context, projectID string) ([]models.DocumentMeta, error)

	// Delete removes one document
	Delete(ctx context.Context, id string) error

	// DeleteByTemplateItem removes every document of one checklist row
	// in a single statement. Returns the number of rows removed.
	DeleteByTemplateItem(ctx context.Context, projectID, templateItemID string) (int64, error)

	// DeleteAllByProject removes all documents of a project
	DeleteAllByProject(ctx context.Context, projectID string) error

	// SetPin sets or clears (nil) the share PIN of a document
	SetPin(ctx context.Context, id string, pin *string) (*models.DocumentMeta, error)
}
