package handler

import (
	"io"
	"log/slog"
	"net/http"

	"protrack/internal/config"
	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// DocumentHandler handles checklist-document HTTP requests for one
// program kind.
type DocumentHandler struct {
	kind       models.ProjectKind
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler for the given kind
func NewDocumentHandler(kind models.ProjectKind, docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		kind:       kind,
		docService: docService,
		logger:     logger,
	}
}

// UploadDocument stores a multipart file upload against a checklist row
// POST /api/{kind}-projects/{id}/documents
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, config.MaxUploadBytes+1))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	req := &services.UploadDocumentRequest{
		ProjectID:      r.PathValue("id"),
		ProjectKind:    h.kind,
		Phase:          models.Phase(r.FormValue("phase")),
		TemplateItemID: r.FormValue("templateItemId"),
		FileName:       header.Filename,
		MimeType:       header.Header.Get("Content-Type"),
		FileData:       data,
	}
	if userID := httputil.GetUserID(r); userID != "" {
		req.UploadedBy = &userID
	}

	meta, err := h.docService.Upload(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, meta)
}

// ListDocuments lists a project's document metadata, newest first
// GET /api/{kind}-projects/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListByProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetProgress returns per-phase checklist completion
// GET /api/{kind}-projects/{id}/documents/progress
func (h *DocumentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.docService.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, progress)
}

// DeleteDocument removes one uploaded document
// DELETE /api/{kind}-projects/{id}/documents/{docId}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	var actorID *string
	if userID := httputil.GetUserID(r); userID != "" {
		actorID = &userID
	}

	err := h.docService.Delete(r.Context(), r.PathValue("id"), r.PathValue("docId"), actorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}

// DeleteChecklistRow removes every document of one checklist row
// DELETE /api/{kind}-projects/{id}/checklist-items/{templateItemId}
func (h *DocumentHandler) DeleteChecklistRow(w http.ResponseWriter, r *http.Request) {
	var actorID *string
	if userID := httputil.GetUserID(r); userID != "" {
		actorID = &userID
	}

	err := h.docService.DeleteChecklistRow(r.Context(), r.PathValue("id"), r.PathValue("templateItemId"), actorID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Checklist row cleared"})
}
