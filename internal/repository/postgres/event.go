package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// PostgresEventRepository implements the EventRepository interface
type PostgresEventRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewEventRepository creates a new calendar-event repository
func NewEventRepository(config *RepositoryConfig) repositories.EventRepository {
	return &PostgresEventRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new calendar event
func (r *PostgresEventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, date, time, location, booked_by_id, booked_service, staff_involved_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.CalendarEvents)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.Time,
		event.Location,
		event.BookedByID,
		event.BookedService,
		event.StaffInvolvedIDs,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}

	return nil
}

// List retrieves all events, newest first
func (r *PostgresEventRepository) List(ctx context.Context) ([]models.CalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT id, title, date, time, location, booked_by_id, booked_service, staff_involved_ids, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.CalendarEvents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()

	events := []models.CalendarEvent{}
	for rows.Next() {
		var e models.CalendarEvent
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Date,
			&e.Time,
			&e.Location,
			&e.BookedByID,
			&e.BookedService,
			&e.StaffInvolvedIDs,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calendar events: %w", err)
	}

	return events, nil
}

// Delete removes an event
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.CalendarEvents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("calendar event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
