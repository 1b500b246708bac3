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

// PostgresNotificationRepository implements the NotificationRepository interface
type PostgresNotificationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(config *RepositoryConfig) repositories.NotificationRepository {
	return &PostgresNotificationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const notificationColumns = `id, user_id, type, title, message, event_id,
		booked_by_user_id, booked_by_name, booked_by_profile_url, invite_status, read, created_at`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.EventID,
		&n.BookedByUserID,
		&n.BookedByName,
		&n.BookedByProfileURL,
		&n.InviteStatus,
		&n.Read,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create creates a new notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Notifications, notificationColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.EventID,
		n.BookedByUserID,
		n.BookedByName,
		n.BookedByProfileURL,
		n.InviteStatus,
		n.Read,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by ID
func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, notificationColumns, r.tables.Notifications)

	executor := GetExecutor(ctx, r.pool)
	n, err := scanNotification(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}

	return n, nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, notificationColumns, r.tables.Notifications)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}

// ListInvitesByEvents returns event-invite notifications for a set of event ids
func (r *PostgresNotificationRepository) ListInvitesByEvents(ctx context.Context, eventIDs []string) ([]models.Notification, error) {
	if len(eventIDs) == 0 {
		return []models.Notification{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE event_id = ANY($1) AND type = $2
	`, notificationColumns, r.tables.Notifications)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, eventIDs, models.NotifEventInvite)
	if err != nil {
		return nil, fmt.Errorf("list event invites: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event invite: %w", err)
		}
		notifications = append(notifications, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event invites: %w", err)
	}

	return notifications, nil
}

// Update persists read / inviteStatus changes
func (r *PostgresNotificationRepository) Update(ctx context.Context, n *models.Notification) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET read = $1, invite_status = $2
		WHERE id = $3
	`, r.tables.Notifications)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, n.Read, n.InviteStatus, n.ID)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", n.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a notification
func (r *PostgresNotificationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Notifications)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
