package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// PostgresActivityRepository implements the ActivityRepository interface
type PostgresActivityRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewActivityRepository creates a new activity-log repository
func NewActivityRepository(config *RepositoryConfig) repositories.ActivityRepository {
	return &PostgresActivityRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends an activity-log row. Details maps to a JSONB column.
func (r *PostgresActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, action, resource_type, resource_id, resource_title, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.ActivityLogs)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.ResourceTitle,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}

	return nil
}

// ListByResourceType retrieves log rows of one resource type
func (r *PostgresActivityRepository) ListByResourceType(ctx context.Context, resourceType string) ([]models.ActivityLog, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, action, resource_type, resource_id, resource_title, details, created_at
		FROM %s
		WHERE resource_type = $1
	`, r.tables.ActivityLogs)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, resourceType)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityLog{}
	for rows.Next() {
		var e models.ActivityLog
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Action,
			&e.ResourceType,
			&e.ResourceID,
			&e.ResourceTitle,
			&e.Details,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}

	return entries, nil
}
