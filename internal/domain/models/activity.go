package models

import (
	"time"
)

// Activity-log actions and resource types.
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionSnakeScore = "SNAKE_SCORE"

	ResourceSetupDocument = "SETUP_DOCUMENT"
	ResourceCestDocument  = "CEST_DOCUMENT"
	ResourceProject       = "PROJECT"
	ResourceSnakeScore    = "SNAKE_SCORE"
)

// ActivityLog is a best-effort audit record. Details is an open-ended
// JSON object; the snake leaderboard reads its "score" key.
type ActivityLog struct {
	ID            string         `json:"id" db:"id"`
	UserID        string         `json:"userId" db:"user_id"`
	Action        string         `json:"action" db:"action"`
	ResourceType  string         `json:"resourceType" db:"resource_type"`
	ResourceID    *string        `json:"resourceId" db:"resource_id"`
	ResourceTitle *string        `json:"resourceTitle" db:"resource_title"`
	Details       map[string]any `json:"details" db:"details"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

// LeaderboardEntry is one row of the snake leaderboard: an approved user
// merged with their best recorded score (0 if they never played).
type LeaderboardEntry struct {
	UserID          string  `json:"userId"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	Score           int     `json:"score"`
}
