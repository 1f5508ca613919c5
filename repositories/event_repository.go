package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventJoinCodeConflict = errors.New("event join code conflict")
	ErrEventCreatorInvalid   = errors.New("event creator conflict or invalid")
)

type EventRepository interface {
	// Create assigns ID and CreatedAt. It fails with ErrEventJoinCodeConflict when another
	// event already uses the join code (compared ignoring case).
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// GetByJoinCode matches ignoring case.
	GetByJoinCode(ctx context.Context, code string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	UpdateStatus(ctx context.Context, id string, status models.EventStatus) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id, title, description, start_date, end_date, venue, status, created_by,
	created_at, join_code, is_team_event, sport, logo_key`

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = newID()
	query := `
		INSERT INTO events (id, title, description, start_date, end_date, venue, status,
			created_by, join_code, is_team_event, sport)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Venue,
		event.Status,
		event.CreatedBy,
		event.JoinCode,
		event.IsTeamEvent,
		event.Sport,
	).Scan(&event.CreatedAt)
	if err != nil {
		if constraint, ok := pqViolation(err, pqUniqueViolation); ok && constraint == "events_join_code_upper_key" {
			return ErrEventJoinCodeConflict
		}
		if _, ok := pqViolation(err, pqForeignKeyViolation); ok {
			return ErrEventCreatorInvalid
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.Venue,
		&e.Status,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.JoinCode,
		&e.IsTeamEvent,
		&e.Sport,
		&e.LogoKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &e, nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresEventRepository) GetByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE upper(join_code) = upper($1)`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresEventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

func (r *postgresEventRepository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE events SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE events SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update event logo: %w", err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
