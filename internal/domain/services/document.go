package services

import (
	"context"

	"protrack/internal/domain/models"
)

// UploadDocumentRequest represents a checklist-row file upload
type UploadDocumentRequest struct {
	ProjectID      string
	ProjectKind    models.ProjectKind
	Phase          models.Phase
	TemplateItemID string
	FileName       string
	MimeType       string
	FileData       []byte
	UploadedBy     *string
}

// PhaseProgress is the per-phase completion summary derived from the
// checklist template joined against uploaded documents.
type PhaseProgress struct {
	Phase    models.Phase `json:"phase"`
	Uploaded int          `json:"uploaded"`
	Total    int          `json:"total"`
	Percent  int          `json:"percent"`
}

// DocumentService defines business logic operations for project documents
type DocumentService interface {
	// Upload stores a new document for a checklist row
	Upload(ctx context.Context, req *UploadDocumentRequest) (*models.DocumentMeta, error)

	// ListByProject lists a project's document metadata, newest first
	ListByProject(ctx context.Context, projectID string) ([]models.DocumentMeta, error)

	// Delete removes one document
	Delete(ctx context.Context, projectID, docID string, actorID *string) error

	// DeleteChecklistRow removes every document of one checklist row
	DeleteChecklistRow(ctx context.Context, projectID, templateItemID string, actorID *string) error

	// Progress computes per-phase completion for a project
	Progress(ctx context.Context, projectID string) ([]PhaseProgress, error)
}
