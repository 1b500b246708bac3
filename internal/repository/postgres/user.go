package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const userColumns = `id, email, password_hash, full_name, contact_no, role,
		is_approved, profile_image_url, birthday, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var birthday *time.Time
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.ContactNo,
		&u.Role,
		&u.IsApproved,
		&u.ProfileImageURL,
		&birthday,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthday != nil {
		d := models.DateOnly(*birthday)
		u.Birthday = &d
	}
	return &u, nil
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Users, userColumns)

	var birthday *time.Time
	if user.Birthday != nil {
		t := user.Birthday.Time()
		birthday = &t
	}

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.ContactNo,
		user.Role,
		user.IsApproved,
		user.ProfileImageURL,
		birthday,
		user.CreatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("account for %s already exists", user.Email),
				ResourceType: "user",
				ResourceID:   user.ID,
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	user, err := scanUser(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(email) = LOWER($1)`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	user, err := scanUser(executor.QueryRow(ctx, query, email))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// GetByFullName retrieves a user by exact display name
func (r *PostgresUserRepository) GetByFullName(ctx context.Context, fullName string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE full_name = $1 LIMIT 1`, userColumns, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	user, err := scanUser(executor.QueryRow(ctx, query, fullName))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %q: %w", fullName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by name: %w", err)
	}

	return user, nil
}

// List retrieves all users, newest first
func (r *PostgresUserRepository) List(ctx context.Context, onlyApproved bool) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, userColumns, r.tables.Users)
	if onlyApproved {
		query += " WHERE is_approved"
	}
	query += " ORDER BY created_at DESC"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// GetSummaries resolves display fields for a set of user ids
func (r *PostgresUserRepository) GetSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	summaries := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	query := fmt.Sprintf(`
		SELECT id, full_name, profile_image_url
		FROM %s
		WHERE id = ANY($1)
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get user summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.UserSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		summaries[s.ID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user summaries: %w", err)
	}

	return summaries, nil
}

// Update persists changed fields of a user
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET full_name = $1, contact_no = $2, role = $3, is_approved = $4, profile_image_url = $5
		WHERE id = $6
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		user.FullName,
		user.ContactNo,
		user.Role,
		user.IsApproved,
		user.ProfileImageURL,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}

	return nil
}

// SetPassword replaces a user's password hash by email
func (r *PostgresUserRepository) SetPassword(ctx context.Context, email, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET password_hash = $1 WHERE LOWER(email) = LOWER($2)`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}

	return nil
}
