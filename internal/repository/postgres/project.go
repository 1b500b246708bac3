package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, kind, code, title, firm, type_of_firm, location, beneficiaries,
		program_funding, categories, status, approved_amount, released_amount,
		project_duration, staff_assigned_id, staff_assigned_name, assignee_profile_url,
		year, date_of_approval, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Kind,
		&p.Code,
		&p.Title,
		&p.Firm,
		&p.TypeOfFirm,
		&p.Location,
		&p.Beneficiaries,
		&p.ProgramFunding,
		&p.Categories,
		&p.Status,
		&p.ApprovedAmount,
		&p.ReleasedAmount,
		&p.ProjectDuration,
		&p.StaffAssignedID,
		&p.StaffAssignedName,
		&p.AssigneeProfile,
		&p.Year,
		&p.DateOfApproval,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`, r.tables.Projects, projectColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		project.ID,
		project.Kind,
		project.Code,
		project.Title,
		project.Firm,
		project.TypeOfFirm,
		project.Location,
		project.Beneficiaries,
		project.ProgramFunding,
		project.Categories,
		project.Status,
		project.ApprovedAmount,
		project.ReleasedAmount,
		project.ProjectDuration,
		project.StaffAssignedID,
		project.StaffAssignedName,
		project.AssigneeProfile,
		project.Year,
		project.DateOfApproval,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project code %q already exists", project.Code),
				ResourceType: "project",
				ResourceID:   project.ID,
			}
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// List retrieves projects matching the filter
func (r *PostgresProjectRepository) List(ctx context.Context, filter repositories.ProjectFilter) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE kind = $1`, projectColumns, r.tables.Projects)
	args := []interface{}{filter.Kind}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR firm ILIKE $%d OR code ILIKE $%d)", n, n, n)
	}

	// SETUP listings sort by code, CEST by recency
	if filter.Kind == models.KindSetup {
		query += " ORDER BY code ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update persists changed fields of a project
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, firm = $2, type_of_firm = $3, location = $4, beneficiaries = $5,
			program_funding = $6, categories = $7, status = $8, approved_amount = $9,
			released_amount = $10, project_duration = $11, staff_assigned_id = $12,
			staff_assigned_name = $13, assignee_profile_url = $14, year = $15,
			date_of_approval = $16, updated_at = $17
		WHERE id = $18
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Title,
		project.Firm,
		project.TypeOfFirm,
		project.Location,
		project.Beneficiaries,
		project.ProgramFunding,
		project.Categories,
		project.Status,
		project.ApprovedAmount,
		project.ReleasedAmount,
		project.ProjectDuration,
		project.StaffAssignedID,
		project.StaffAssignedName,
		project.AssigneeProfile,
		project.Year,
		project.DateOfApproval,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// NextCode returns the next zero-padded project code for a kind
func (r *PostgresProjectRepository) NextCode(ctx context.Context, kind models.ProjectKind) (string, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(code::int), 0) + 1
		FROM %s
		WHERE kind = $1 AND code ~ '^[0-9]+$'
	`, r.tables.Projects)

	var next int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, kind).Scan(&next); err != nil {
		return "", fmt.Errorf("next project code: %w", err)
	}

	return fmt.Sprintf("%03d", next), nil
}
