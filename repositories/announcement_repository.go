package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
)

var ErrAnnouncementEventInvalid = errors.New("announcement event conflict or invalid")

type AnnouncementRepository interface {
	// Create assigns ID and CreatedAt.
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context) ([]*models.Announcement, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Announcement, error)
}

type postgresAnnouncementRepository struct {
	db *sql.DB
}

func NewPostgresAnnouncementRepository(db *sql.DB) AnnouncementRepository {
	return &postgresAnnouncementRepository{db: db}
}

const announcementColumns = `id, title, content, event_id, event_title, created_by, created_by_name, created_at, priority`

func (r *postgresAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	a.ID = newID()
	query := `
		INSERT INTO announcements (id, title, content, event_id, event_title, created_by, created_by_name, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		a.ID,
		a.Title,
		a.Content,
		a.EventID,
		a.EventTitle,
		a.CreatedBy,
		a.CreatedByName,
		a.Priority,
	).Scan(&a.CreatedAt)
	if err != nil {
		if _, ok := pqViolation(err, pqForeignKeyViolation); ok {
			return ErrAnnouncementEventInvalid
		}
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *postgresAnnouncementRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Announcement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0)
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Content,
			&a.EventID,
			&a.EventTitle,
			&a.CreatedBy,
			&a.CreatedByName,
			&a.CreatedAt,
			&a.Priority,
		); err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		announcements = append(announcements, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return announcements, nil
}

func (r *postgresAnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	return r.list(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY created_at ASC, id ASC`)
}

func (r *postgresAnnouncementRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Announcement, error) {
	return r.list(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE event_id = $1 ORDER BY created_at ASC, id ASC`, eventID)
}
