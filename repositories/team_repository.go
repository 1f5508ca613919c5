package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamEventInvalid = errors.New("team event conflict or invalid")
)

// Assignment is the state left behind by TeamRepository.AssignMember.
type Assignment struct {
	Team           models.Team
	Participant    models.EventParticipant
	PreviousTeamID *string
}

type TeamRepository interface {
	// Create assigns ID and CreatedAt and starts the team with no members.
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Team, error)
	// AssignMember moves a participant of eventID into teamID of the same event. Removal
	// from the previous team, the participant's team reference and the new membership
	// become visible together. Returns ErrParticipantNotFound or ErrTeamNotFound when
	// either side is missing from the event.
	AssignMember(ctx context.Context, eventID, participantID, teamID string) (*Assignment, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	team.ID = newID()
	team.Members = []string{}
	query := `INSERT INTO teams (id, name, event_id) VALUES ($1, $2, $3) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, team.ID, team.Name, team.EventID).Scan(&team.CreatedAt)
	if err != nil {
		if _, ok := pqViolation(err, pqForeignKeyViolation); ok {
			return ErrTeamEventInvalid
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *postgresTeamRepository) getByID(ctx context.Context, q queryer, id string) (*models.Team, error) {
	var t models.Team
	err := q.QueryRowContext(ctx, `SELECT id, name, event_id, created_at FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.EventID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	members, err := r.loadMembers(ctx, q, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Members = members[t.ID]
	if t.Members == nil {
		t.Members = []string{}
	}
	return &t, nil
}

// loadMembers returns participant ids per team in assignment order.
func (r *postgresTeamRepository) loadMembers(ctx context.Context, q queryer, teamIDs []string) (map[string][]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT team_id, id FROM event_participants
		WHERE team_id = ANY($1)
		ORDER BY assigned_at ASC, id ASC`, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]string, len(teamIDs))
	for rows.Next() {
		var teamID, participantID string
		if err := rows.Scan(&teamID, &participantID); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members[teamID] = append(members[teamID], participantID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", err)
	}
	return members, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *postgresTeamRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, event_id, created_at FROM teams WHERE event_id = $1 ORDER BY created_at ASC, id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by event: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.EventID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, &t)
		ids = append(ids, t.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}

	members, err := r.loadMembers(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		t.Members = members[t.ID]
		if t.Members == nil {
			t.Members = []string{}
		}
	}
	return teams, nil
}

func (r *postgresTeamRepository) AssignMember(ctx context.Context, eventID, participantID, teamID string) (*Assignment, error) {
	var result *Assignment
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		// Lock the target team first, then the participant row, so concurrent moves serialize.
		var teamEventID string
		err := tx.QueryRowContext(ctx, `SELECT event_id FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&teamEventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to lock team: %w", err)
		}
		// A team of another event is reported as missing.
		if teamEventID != eventID {
			return ErrTeamNotFound
		}

		query := `SELECT ` + participantColumns + ` FROM event_participants WHERE id = $1 AND event_id = $2 FOR UPDATE`
		participant, err := scanParticipant(tx.QueryRowContext(ctx, query, participantID, eventID))
		if err != nil {
			return err
		}

		// Reassigning to the current team is a no-op.
		previous := participant.TeamID
		if previous == nil || *previous != teamID {
			if _, err := tx.ExecContext(ctx,
				`UPDATE event_participants SET team_id = $1, assigned_at = now() WHERE id = $2`,
				teamID, participantID,
			); err != nil {
				return fmt.Errorf("failed to assign participant to team: %w", err)
			}
		}
		participant.TeamID = &teamID

		// Reload inside the tx so Members already includes the participant.
		team, err := r.getByID(ctx, tx, teamID)
		if err != nil {
			return err
		}
		result = &Assignment{Team: *team, Participant: *participant, PreviousTeamID: previous}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
