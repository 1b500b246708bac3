package services

import (
	"context"

	"protrack/internal/domain/models"
)

// LeaderboardService backs the snake-game leaderboard built on top of
// the activity log.
type LeaderboardService interface {
	// Top returns approved users merged with their best score,
	// sorted descending, at most limit entries.
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	// RecordScore appends a score row for the user
	RecordScore(ctx context.Context, userID string, score int) error
}

// ActivityLogger records best-effort audit entries. Implementations must
// swallow failures; a failed log line never fails the primary operation.
type ActivityLogger interface {
	Record(ctx context.Context, entry *models.ActivityLog)
}
