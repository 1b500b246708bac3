package handler

import (
	"log/slog"
	"net/http"

	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// ProjectHandler handles project HTTP requests for one program kind.
// The server wires two instances, one per API prefix.
type ProjectHandler struct {
	kind           models.ProjectKind
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler for the given kind
func NewProjectHandler(kind models.ProjectKind, projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		kind:           kind,
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects retrieves projects, filtered by status and search
// GET /api/{kind}-projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProjectFilter{
		Kind:   h.kind,
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	projects, err := h.projectService.ListProjects(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/{kind}-projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Kind = h.kind

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /api/{kind}-projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, h.kind)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update
// PATCH /api/{kind}-projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), id, h.kind, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and everything attached to it
// DELETE /api/{kind}-projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id, h.kind); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
