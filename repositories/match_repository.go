package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/event-manager/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchEventInvalid = errors.New("match event or side conflict or invalid")
)

// MatchStatusUpdate is a partial update: Status is always written, nil scores and a nil
// EndTime leave the stored values untouched.
type MatchStatusUpdate struct {
	Status  models.MatchStatus
	ScoreA  *models.Score
	ScoreB  *models.Score
	EndTime *time.Time
}

type MatchRepository interface {
	// Create assigns ID and CreatedAt.
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Match, error)
	UpdateStatus(ctx context.Context, id string, update MatchStatusUpdate) (*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, title, team_a, team_b, team_a_id, team_b_id, player_a_id, player_b_id,
	score_a, score_a_numeric, score_b, score_b_numeric, detailed_score, start_time, end_time,
	status, event_id, notes, sport, created_at`

func scoreColumns(s *models.Score) (*string, bool) {
	if s == nil {
		return nil, false
	}
	v := s.Value
	return &v, s.Numeric
}

func scoreFromColumns(value sql.NullString, numeric bool) *models.Score {
	if !value.Valid {
		return nil
	}
	return &models.Score{Value: value.String, Numeric: numeric}
}

func detailedScoreParam(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	var scoreA, scoreB sql.NullString
	var scoreANumeric, scoreBNumeric bool
	var detailed []byte
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.TeamA,
		&m.TeamB,
		&m.TeamAID,
		&m.TeamBID,
		&m.PlayerAID,
		&m.PlayerBID,
		&scoreA,
		&scoreANumeric,
		&scoreB,
		&scoreBNumeric,
		&detailed,
		&m.StartTime,
		&m.EndTime,
		&m.Status,
		&m.EventID,
		&m.Notes,
		&m.Sport,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	m.ScoreA = scoreFromColumns(scoreA, scoreANumeric)
	m.ScoreB = scoreFromColumns(scoreB, scoreBNumeric)
	if len(detailed) > 0 {
		m.DetailedScore = detailed
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	m.ID = newID()
	scoreA, scoreANumeric := scoreColumns(m.ScoreA)
	scoreB, scoreBNumeric := scoreColumns(m.ScoreB)
	query := `
		INSERT INTO matches (id, title, team_a, team_b, team_a_id, team_b_id, player_a_id, player_b_id,
			score_a, score_a_numeric, score_b, score_b_numeric, detailed_score, start_time, end_time,
			status, event_id, notes, sport)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.ID,
		m.Title,
		m.TeamA,
		m.TeamB,
		m.TeamAID,
		m.TeamBID,
		m.PlayerAID,
		m.PlayerBID,
		scoreA,
		scoreANumeric,
		scoreB,
		scoreBNumeric,
		detailedScoreParam(m.DetailedScore),
		m.StartTime,
		m.EndTime,
		m.Status,
		m.EventID,
		m.Notes,
		m.Sport,
	).Scan(&m.CreatedAt)
	if err != nil {
		if _, ok := pqViolation(err, pqForeignKeyViolation); ok {
			return ErrMatchEventInvalid
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY created_at ASC, id ASC`)
}

func (r *postgresMatchRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Match, error) {
	return r.list(ctx, `SELECT `+matchColumns+` FROM matches WHERE event_id = $1 ORDER BY created_at ASC, id ASC`, eventID)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id string, update MatchStatusUpdate) (*models.Match, error) {
	scoreA, scoreANumeric := scoreColumns(update.ScoreA)
	scoreB, scoreBNumeric := scoreColumns(update.ScoreB)
	query := `
		UPDATE matches SET
			status = $1,
			score_a = CASE WHEN $2::boolean THEN $3 ELSE score_a END,
			score_a_numeric = CASE WHEN $2::boolean THEN $4 ELSE score_a_numeric END,
			score_b = CASE WHEN $5::boolean THEN $6 ELSE score_b END,
			score_b_numeric = CASE WHEN $5::boolean THEN $7 ELSE score_b_numeric END,
			end_time = COALESCE($8, end_time)
		WHERE id = $9
		RETURNING ` + matchColumns

	return scanMatch(r.db.QueryRowContext(ctx, query,
		update.Status,
		update.ScoreA != nil,
		scoreA,
		scoreANumeric,
		update.ScoreB != nil,
		scoreB,
		scoreBNumeric,
		update.EndTime,
		id,
	))
}
