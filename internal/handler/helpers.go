package handler

import (
	"context"
	"errors"
	"net/http"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		httputil.RespondError(w, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// currentUser loads the authenticated user from the request identity.
// Returns an unauthorized error when the request carries no identity.
func currentUser(ctx context.Context, r *http.Request, users services.UserService) (*models.User, error) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		return nil, &domain.UnauthorizedError{Message: "authentication required"}
	}
	return users.GetUser(ctx, userID)
}
