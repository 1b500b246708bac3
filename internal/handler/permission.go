package handler

import (
	"log/slog"
	"net/http"

	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// PermissionHandler handles edit-permission HTTP requests
type PermissionHandler struct {
	permService services.PermissionService
	userService services.UserService
	logger      *slog.Logger
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(permService services.PermissionService, userService services.UserService, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{
		permService: permService,
		userService: userService,
		logger:      logger,
	}
}

// ListPermissions returns the pending and approved editor lists
// GET /api/{kind}-projects/{id}/permissions
func (h *PermissionHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.permService.ListPermissions(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, perms)
}

// RequestEdit records a pending edit request for the caller
// POST /api/{kind}-projects/{id}/edit-requests
func (h *PermissionHandler) RequestEdit(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.userService)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.permService.RequestEdit(r.Context(), r.PathValue("id"), user); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Edit request submitted"})
}

// AcceptEditRequest approves a pending edit request
// POST /api/{kind}-projects/{id}/edit-requests/{userId}/accept
func (h *PermissionHandler) AcceptEditRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), r, h.userService)
	if err != nil {
		handleError(w, err)
		return
	}

	err = h.permService.AcceptEditRequest(r.Context(), r.PathValue("id"), actor, r.PathValue("userId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Edit request approved"})
}

// DeclineEditRequest removes a pending edit request
// POST /api/{kind}-projects/{id}/edit-requests/{userId}/decline
func (h *PermissionHandler) DeclineEditRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), r, h.userService)
	if err != nil {
		handleError(w, err)
		return
	}

	err = h.permService.DeclineEditRequest(r.Context(), r.PathValue("id"), actor, r.PathValue("userId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Edit request declined"})
}

// RevokeEditAccess removes an approved editor
// DELETE /api/{kind}-projects/{id}/editors/{userId}
func (h *PermissionHandler) RevokeEditAccess(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r.Context(), r, h.userService)
	if err != nil {
		handleError(w, err)
		return
	}

	err = h.permService.RevokeEditAccess(r.Context(), r.PathValue("id"), actor, r.PathValue("userId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Edit access revoked"})
}
