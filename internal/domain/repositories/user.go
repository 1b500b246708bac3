package repositories

import (
	"context"

	"protrack/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByFullName retrieves a user by exact display name
	GetByFullName(ctx context.Context, fullName string) (*models.User, error)

	// List retrieves all users, newest first
	List(ctx context.Context, onlyApproved bool) ([]models.User, error)

	// GetSummaries resolves display fields for a set of user ids.
	// Unknown ids are silently omitted.
	GetSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)

	// Update persists changed fields of a user
	Update(ctx context.Context, user *models.User) error

	// SetPassword replaces a user's password hash by email
	SetPassword(ctx context.Context, email, passwordHash string) error
}
