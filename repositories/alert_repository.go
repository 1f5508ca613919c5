package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
)

var ErrAlertNotFound = errors.New("alert not found")

// AlertListOptions pages a user's alerts. Zero Limit means no limit.
type AlertListOptions struct {
	Limit  int
	Offset int
}

type AlertRepository interface {
	// CreateBatch assigns ID and, when zero, CreatedAt to every alert and stores them
	// all or none.
	CreateBatch(ctx context.Context, alerts []*models.Alert) error
	// ListByUser returns newest first; alerts with equal CreatedAt come newest insert first.
	ListByUser(ctx context.Context, userID string, opts AlertListOptions) ([]*models.Alert, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead returns ErrAlertNotFound when the alert does not exist or belongs to
	// another user. Marking an already read alert succeeds.
	MarkRead(ctx context.Context, userID, alertID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type postgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) AlertRepository {
	return &postgresAlertRepository{db: db}
}

func (r *postgresAlertRepository) CreateBatch(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO alerts (id, user_id, type, title, message, event_id, event_title, match_id,
				announcement_id, is_read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
		if err != nil {
			return fmt.Errorf("failed to prepare alert insert: %w", err)
		}
		defer stmt.Close()

		now := nowUTC()
		for _, a := range alerts {
			a.ID = newID()
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
			if _, err := stmt.ExecContext(ctx,
				a.ID,
				a.UserID,
				a.Type,
				a.Title,
				a.Message,
				a.EventID,
				a.EventTitle,
				a.MatchID,
				a.AnnouncementID,
				a.IsRead,
				a.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to create alert: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresAlertRepository) ListByUser(ctx context.Context, userID string, opts AlertListOptions) ([]*models.Alert, error) {
	query := `
		SELECT id, user_id, type, title, message, event_id, event_title, match_id, announcement_id,
			is_read, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		OFFSET $2`
	args := []interface{}{userID, opts.Offset}
	if opts.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Type,
			&a.Title,
			&a.Message,
			&a.EventID,
			&a.EventTitle,
			&a.MatchID,
			&a.AnnouncementID,
			&a.IsRead,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", err)
	}
	return alerts, nil
}

func (r *postgresAlertRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

func (r *postgresAlertRepository) MarkRead(ctx context.Context, userID, alertID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2`, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark alert as read: %w", err)
	}
	return checkAffectedRows(result, ErrAlertNotFound)
}

func (r *postgresAlertRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all alerts as read: %w", err)
	}
	return result.RowsAffected()
}
