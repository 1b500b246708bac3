package handler

import (
	"log/slog"
	"net/http"

	"protrack/internal/domain/services"
	"protrack/internal/httputil"
)

// LeaderboardHandler handles snake-leaderboard HTTP requests
type LeaderboardHandler struct {
	leaderboard services.LeaderboardService
	logger      *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard services.LeaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// GetLeaderboard returns the top ten approved users by best score
// GET /api/snake-scores
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Top(r.Context(), 10)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// SubmitScore records a score for the authenticated user
// POST /api/snake-scores
func (h *LeaderboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Score int `json:"score"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.leaderboard.RecordScore(r.Context(), userID, req.Score); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Score recorded"})
}
