package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// PostgresPermissionRepository implements the PermissionRepository
// interface. Every transition is one statement; the unique
// (project_id, user_id) constraint makes upserts race-free.
type PostgresPermissionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(config *RepositoryConfig) repositories.PermissionRepository {
	return &PostgresPermissionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Get returns the permission row for (projectID, userID)
func (r *PostgresPermissionRepository) Get(ctx context.Context, projectID, userID string) (*models.EditPermission, error) {
	query := fmt.Sprintf(`
		SELECT project_id, user_id, state, requested_at, decided_at
		FROM %s
		WHERE project_id = $1 AND user_id = $2
	`, r.tables.ProjectEditors)

	var p models.EditPermission
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, projectID, userID).Scan(
		&p.ProjectID,
		&p.UserID,
		&p.State,
		&p.RequestedAt,
		&p.DecidedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("permission %s/%s: %w", projectID, userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}

	return &p, nil
}

// Request inserts a PENDING row, leaving any existing row untouched
func (r *PostgresPermissionRepository) Request(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id, state, requested_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID, models.EditPending); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return fmt.Errorf("request edit access: %w", err)
	}

	return nil
}

// Approve upserts the row to APPROVED
func (r *PostgresPermissionRepository) Approve(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id, state, requested_at, decided_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (project_id, user_id)
		DO UPDATE SET state = EXCLUDED.state, decided_at = NOW()
	`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID, models.EditApproved); err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return fmt.Errorf("approve edit access: %w", err)
	}

	return nil
}

// DeletePending removes a PENDING row only
func (r *PostgresPermissionRepository) DeletePending(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND user_id = $2 AND state = $3
	`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID, models.EditPending); err != nil {
		return fmt.Errorf("decline edit request: %w", err)
	}

	return nil
}

// DeleteApproved removes an APPROVED row
func (r *PostgresPermissionRepository) DeleteApproved(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND user_id = $2 AND state = $3
	`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID, models.EditApproved); err != nil {
		return fmt.Errorf("revoke edit access: %w", err)
	}

	return nil
}

// ListByProject returns all permission rows of a project
func (r *PostgresPermissionRepository) ListByProject(ctx context.Context, projectID string) ([]models.EditPermission, error) {
	query := fmt.Sprintf(`
		SELECT project_id, user_id, state, requested_at, decided_at
		FROM %s
		WHERE project_id = $1
		ORDER BY state DESC, requested_at ASC
	`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	perms := []models.EditPermission{}
	for rows.Next() {
		var p models.EditPermission
		if err := rows.Scan(&p.ProjectID, &p.UserID, &p.State, &p.RequestedAt, &p.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permissions: %w", err)
	}

	return perms, nil
}

// DeleteAllByProject removes every permission row of a project
func (r *PostgresPermissionRepository) DeleteAllByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.ProjectEditors)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete project permissions: %w", err)
	}

	return nil
}
