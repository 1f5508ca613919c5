package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
)

var ErrParticipantNotFound = errors.New("participant not found")

// ParticipantRepository is read-only: participants are created when a join request is
// approved (JoinRequestRepository.Approve) and moved between teams by
// TeamRepository.AssignMember.
type ParticipantRepository interface {
	GetByID(ctx context.Context, id string) (*models.EventParticipant, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.EventParticipant, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.EventParticipant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `id, user_id, user_name, event_id, role, team_id, joined_at`

func scanParticipant(row rowScanner) (*models.EventParticipant, error) {
	var p models.EventParticipant
	err := row.Scan(&p.ID, &p.UserID, &p.UserName, &p.EventID, &p.Role, &p.TeamID, &p.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to scan participant: %w", err)
	}
	return &p, nil
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id string) (*models.EventParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants WHERE id = $1`
	return scanParticipant(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresParticipantRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.EventParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants WHERE user_id = $1 AND event_id = $2`
	return scanParticipant(r.db.QueryRowContext(ctx, query, userID, eventID))
}

func (r *postgresParticipantRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.EventParticipant, error) {
	query := `SELECT ` + participantColumns + ` FROM event_participants WHERE event_id = $1 ORDER BY joined_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants by event: %w", err)
	}
	defer rows.Close()

	participants := make([]*models.EventParticipant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}
