package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"protrack/internal/checklist"
	"protrack/internal/config"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo     repositories.DocumentRepository
	projectRepo repositories.ProjectRepository
	activity    services.ActivityLogger
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	activity services.ActivityLogger,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		activity:    activity,
		logger:      logger,
	}
}

// Upload stores a new document for a checklist row
func (s *documentService) Upload(ctx context.Context, req *services.UploadDocumentRequest) (*models.DocumentMeta, error) {
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Kind != req.ProjectKind {
		return nil, fmt.Errorf("%s project %s: %w", req.ProjectKind, req.ProjectID, domain.ErrNotFound)
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc := &models.Document{
		ID:             uuid.NewString(),
		ProjectID:      project.ID,
		ProjectKind:    project.Kind,
		Phase:          req.Phase,
		TemplateItemID: req.TemplateItemID,
		FileName:       req.FileName,
		MimeType:       mimeType,
		FileData:       req.FileData,
		UploadedBy:     req.UploadedBy,
		CreatedAt:      time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded",
		"id", doc.ID,
		"projectId", doc.ProjectID,
		"templateItemId", doc.TemplateItemID,
		"size", len(doc.FileData),
	)

	if req.UploadedBy != nil {
		s.activity.Record(ctx, &models.ActivityLog{
			UserID:        *req.UploadedBy,
			Action:        models.ActionCreate,
			ResourceType:  documentResource(project.Kind),
			ResourceID:    &doc.ID,
			ResourceTitle: &doc.FileName,
			Details: map[string]any{
				"projectId":      project.ID,
				"projectTitle":   project.Title,
				"templateItemId": doc.TemplateItemID,
			},
		})
	}

	meta := doc.Meta()
	return &meta, nil
}

// ListByProject lists a project's document metadata, newest first
func (s *documentService) ListByProject(ctx context.Context, projectID string) ([]models.DocumentMeta, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByProject(ctx, projectID)
}

// Delete removes one document
func (s *documentService) Delete(ctx context.Context, projectID, docID string, actorID *string) error {
	meta, err := s.docRepo.GetMetaByID(ctx, docID)
	if err != nil {
		return err
	}
	if meta.ProjectID != projectID {
		return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}

	if err := s.docRepo.Delete(ctx, docID); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", docID,
		"projectId", projectID,
	)

	if actorID != nil {
		s.activity.Record(ctx, &models.ActivityLog{
			UserID:        *actorID,
			Action:        models.ActionDelete,
			ResourceType:  documentResource(meta.ProjectKind),
			ResourceID:    &docID,
			ResourceTitle: &meta.FileName,
			Details: map[string]any{
				"projectId":      projectID,
				"templateItemId": meta.TemplateItemID,
			},
		})
	}

	return nil
}

// DeleteChecklistRow removes every document of one checklist row. The
// whole row is cleared in one statement so two concurrent clears cannot
// interleave partial deletes.
func (s *documentService) DeleteChecklistRow(ctx context.Context, projectID, templateItemID string, actorID *string) error {
	if _, _, err := checklist.ParseItemID(templateItemID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	removed, err := s.docRepo.DeleteByTemplateItem(ctx, projectID, templateItemID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("checklist row %s has no documents: %w", templateItemID, domain.ErrNotFound)
	}

	s.logger.Info("checklist row cleared",
		"projectId", projectID,
		"templateItemId", templateItemID,
		"removed", removed,
	)

	if actorID != nil {
		s.activity.Record(ctx, &models.ActivityLog{
			UserID:        *actorID,
			Action:        models.ActionDelete,
			ResourceType:  documentResource(project.Kind),
			ResourceID:    &templateItemID,
			ResourceTitle: &project.Title,
			Details: map[string]any{
				"projectId": projectID,
				"removed":   removed,
			},
		})
	}

	return nil
}

// Progress computes per-phase completion for a project
func (s *documentService) Progress(ctx context.Context, projectID string) ([]services.PhaseProgress, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	phases := checklist.Phases(project.Kind)
	result := make([]services.PhaseProgress, 0, len(phases))
	for _, phase := range phases {
		uploaded, total, percent := checklist.Progress(project.Kind, phase, docs)
		result = append(result, services.PhaseProgress{
			Phase:    phase,
			Uploaded: uploaded,
			Total:    total,
			Percent:  percent,
		})
	}

	return result, nil
}

// validateUpload checks the upload request before any storage work
func (s *documentService) validateUpload(req *services.UploadDocumentRequest) error {
	if strings.TrimSpace(req.FileName) == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrValidation)
	}
	if len(req.FileName) > config.MaxFileNameLength {
		return fmt.Errorf("%w: file name exceeds %d characters", domain.ErrValidation, config.MaxFileNameLength)
	}
	if len(req.FileData) == 0 {
		return fmt.Errorf("%w: file is empty", domain.ErrValidation)
	}
	if len(req.FileData) > config.MaxUploadBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, config.MaxUploadBytes)
	}

	phase, _, err := checklist.ParseItemID(req.TemplateItemID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Phase == "" {
		req.Phase = phase
	}
	if req.Phase != phase {
		return fmt.Errorf("%w: phase %s does not match item %s", domain.ErrValidation, req.Phase, req.TemplateItemID)
	}
	if !checklist.HasPhase(req.ProjectKind, phase) {
		return fmt.Errorf("%w: %s checklist has no %s phase", domain.ErrValidation, req.ProjectKind, phase)
	}

	return nil
}

// documentResource maps a program kind to its audit resource type
func documentResource(kind models.ProjectKind) string {
	if kind == models.KindCest {
		return models.ResourceCestDocument
	}
	return models.ResourceSetupDocument
}
