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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// metaColumns deliberately excludes file_data so listings never drag
// binary payloads across the wire.
const metaColumns = `id, project_id, project_kind, phase, template_item_id,
		file_name, mime_type, (qr_pin IS NOT NULL), uploaded_by, created_at`

func scanMeta(row pgx.Row) (*models.DocumentMeta, error) {
	var m models.DocumentMeta
	err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.ProjectKind,
		&m.Phase,
		&m.TemplateItemID,
		&m.FileName,
		&m.MimeType,
		&m.HasPin,
		&m.UploadedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create stores a new document including its binary payload
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, project_kind, phase, template_item_id,
			file_name, mime_type, file_data, qr_pin, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.ProjectKind,
		doc.Phase,
		doc.TemplateItemID,
		doc.FileName,
		doc.MimeType,
		doc.FileData,
		doc.QRPin,
		doc.UploadedBy,
		doc.CreatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", doc.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a full document including the payload
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, project_kind, phase, template_item_id,
			file_name, mime_type, file_data, qr_pin, uploaded_by, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.ProjectKind,
		&doc.Phase,
		&doc.TemplateItemID,
		&doc.FileName,
		&doc.MimeType,
		&doc.FileData,
		&doc.QRPin,
		&doc.UploadedBy,
		&doc.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// GetMetaByID retrieves a document without touching the payload column
func (r *PostgresDocumentRepository) GetMetaByID(ctx context.Context, id string) (*models.DocumentMeta, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, metaColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	meta, err := scanMeta(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document metadata: %w", err)
	}

	return meta, nil
}

// ListByProject lists document metadata for a project, newest first
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.DocumentMeta, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, metaColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.DocumentMeta{}
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// Delete removes one document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByTemplateItem removes every document of one checklist row in a
// single statement, so a row wipe is all-or-nothing.
func (r *PostgresDocumentRepository) DeleteByTemplateItem(ctx context.Context, projectID, templateItemID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1 AND template_item_id = $2`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, templateItemID)
	if err != nil {
		return 0, fmt.Errorf("delete checklist row documents: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteAllByProject removes all documents of a project
func (r *PostgresDocumentRepository) DeleteAllByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete project documents: %w", err)
	}

	return nil
}

// SetPin sets or clears the share PIN of a document
func (r *PostgresDocumentRepository) SetPin(ctx context.Context, id string, pin *string) (*models.DocumentMeta, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET qr_pin = $1
		WHERE id = $2
		RETURNING %s
	`, r.tables.Documents, metaColumns)

	executor := GetExecutor(ctx, r.pool)
	meta, err := scanMeta(executor.QueryRow(ctx, query, pin, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set document pin: %w", err)
	}

	return meta, nil
}
