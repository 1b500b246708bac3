package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// maxSnakeScore caps accepted scores; anything above it is a tampered
// client rather than a game result.
const maxSnakeScore = 10000

// leaderboardService implements the LeaderboardService interface
type leaderboardService struct {
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	logger       *slog.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) services.LeaderboardService {
	return &leaderboardService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Top returns approved users merged with their best score, sorted by
// score descending, at most limit entries. Users who never played rank
// with score 0.
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	users, err := s.userRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	logs, err := s.activityRepo.ListByResourceType(ctx, models.ResourceSnakeScore)
	if err != nil {
		return nil, err
	}

	best := make(map[string]int)
	for _, entry := range logs {
		score, ok := scoreFromDetails(entry.Details)
		if !ok {
			continue
		}
		if score > best[entry.UserID] {
			best[entry.UserID] = score
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:          u.ID,
			FullName:        u.FullName,
			ProfileImageURL: u.ProfileImageURL,
			Score:           best[u.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// RecordScore appends a score row for the user
func (s *leaderboardService) RecordScore(ctx context.Context, userID string, score int) error {
	if userID == "" {
		return fmt.Errorf("missing user identity: %w", domain.ErrUnauthorized)
	}
	if score < 0 || score > maxSnakeScore {
		return fmt.Errorf("%w: score must be between 0 and %d", domain.ErrValidation, maxSnakeScore)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	entry := &models.ActivityLog{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       models.ActionSnakeScore,
		ResourceType: models.ResourceSnakeScore,
		Details:      map[string]any{"score": score},
		CreatedAt:    time.Now(),
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return err
	}

	s.logger.Info("snake score recorded", "userId", userID, "score", score)
	return nil
}

// scoreFromDetails extracts the score key, tolerating the numeric types
// JSON decoding can produce.
func scoreFromDetails(details map[string]any) (int, bool) {
	raw, ok := details["score"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
