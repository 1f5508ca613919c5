package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/event-manager/models"
)

var (
	ErrJoinRequestNotFound   = errors.New("join request not found")
	ErrJoinRequestExists     = errors.New("join request already exists for this user and event")
	ErrJoinRequestNotPending = errors.New("join request is not pending")
	ErrJoinRequestInvalid    = errors.New("join request user or event invalid")
)

type JoinRequestRepository interface {
	// Create stores a new pending request. If the user already has a request for the
	// event, nothing is written and the existing request is returned with
	// ErrJoinRequestExists.
	Create(ctx context.Context, req *models.JoinRequest) (*models.JoinRequest, error)
	GetByID(ctx context.Context, id string) (*models.JoinRequest, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.JoinRequest, error)
	ListByEvent(ctx context.Context, eventID string, statusFilter *models.JoinRequestStatus) ([]*models.JoinRequest, error)
	// Approve marks a pending request approved and creates its participant in one step.
	Approve(ctx context.Context, requestID string) (*models.JoinRequest, *models.EventParticipant, error)
	// Reject marks a pending request rejected.
	Reject(ctx context.Context, requestID string) (*models.JoinRequest, error)
}

type postgresJoinRequestRepository struct {
	db *sql.DB
}

func NewPostgresJoinRequestRepository(db *sql.DB) JoinRequestRepository {
	return &postgresJoinRequestRepository{db: db}
}

const joinRequestColumns = `id, user_id, user_name, event_id, requested_role, status, requested_at, reviewed_at`

func scanJoinRequest(row rowScanner) (*models.JoinRequest, error) {
	var jr models.JoinRequest
	err := row.Scan(
		&jr.ID,
		&jr.UserID,
		&jr.UserName,
		&jr.EventID,
		&jr.RequestedRole,
		&jr.Status,
		&jr.RequestedAt,
		&jr.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("failed to scan join request: %w", err)
	}
	return &jr, nil
}

func (r *postgresJoinRequestRepository) Create(ctx context.Context, req *models.JoinRequest) (*models.JoinRequest, error) {
	req.ID = newID()
	req.Status = models.JoinRequestPending
	query := `
		INSERT INTO join_requests (id, user_id, user_name, event_id, requested_role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING requested_at`

	err := r.db.QueryRowContext(ctx, query,
		req.ID,
		req.UserID,
		req.UserName,
		req.EventID,
		req.RequestedRole,
		req.Status,
	).Scan(&req.RequestedAt)
	if err != nil {
		if constraint, ok := pqViolation(err, pqUniqueViolation); ok && constraint == "join_requests_user_id_event_id_key" {
			existing, findErr := r.FindByUserAndEvent(ctx, req.UserID, req.EventID)
			if findErr != nil {
				return nil, findErr
			}
			return existing, ErrJoinRequestExists
		}
		if _, ok := pqViolation(err, pqForeignKeyViolation); ok {
			return nil, ErrJoinRequestInvalid
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}
	return req, nil
}

func (r *postgresJoinRequestRepository) GetByID(ctx context.Context, id string) (*models.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	return scanJoinRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresJoinRequestRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE user_id = $1 AND event_id = $2`
	return scanJoinRequest(r.db.QueryRowContext(ctx, query, userID, eventID))
}

func (r *postgresJoinRequestRepository) ListByEvent(ctx context.Context, eventID string, statusFilter *models.JoinRequestStatus) ([]*models.JoinRequest, error) {
	var queryBuilder strings.Builder
	args := []interface{}{eventID}

	queryBuilder.WriteString(`SELECT ` + joinRequestColumns + ` FROM join_requests WHERE event_id = $1`)
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $2")
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY requested_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.JoinRequest, 0)
	for rows.Next() {
		jr, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, jr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating join request rows: %w", err)
	}
	return requests, nil
}

// review locks a pending request and switches its status inside tx.
func (r *postgresJoinRequestRepository) review(ctx context.Context, tx *sql.Tx, requestID string, status models.JoinRequestStatus) (*models.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1 FOR UPDATE`
	jr, err := scanJoinRequest(tx.QueryRowContext(ctx, query, requestID))
	if err != nil {
		return nil, err
	}
	if jr.Status != models.JoinRequestPending {
		return jr, ErrJoinRequestNotPending
	}
	reviewedAt := nowUTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE join_requests SET status = $1, reviewed_at = $2 WHERE id = $3`,
		status, reviewedAt, requestID,
	); err != nil {
		return nil, fmt.Errorf("failed to update join request status: %w", err)
	}
	jr.Status = status
	jr.ReviewedAt = &reviewedAt
	return jr, nil
}

func (r *postgresJoinRequestRepository) Approve(ctx context.Context, requestID string) (*models.JoinRequest, *models.EventParticipant, error) {
	var jr *models.JoinRequest
	var participant *models.EventParticipant

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		jr, err = r.review(ctx, tx, requestID, models.JoinRequestApproved)
		if err != nil {
			return err
		}
		participant = &models.EventParticipant{
			ID:       newID(),
			UserID:   jr.UserID,
			UserName: jr.UserName,
			EventID:  jr.EventID,
			Role:     jr.RequestedRole,
			JoinedAt: *jr.ReviewedAt,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO event_participants (id, user_id, user_name, event_id, role, joined_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			participant.ID,
			participant.UserID,
			participant.UserName,
			participant.EventID,
			participant.Role,
			participant.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create participant: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrJoinRequestNotPending) {
			return jr, nil, err
		}
		return nil, nil, err
	}
	return jr, participant, nil
}

func (r *postgresJoinRequestRepository) Reject(ctx context.Context, requestID string) (*models.JoinRequest, error) {
	var jr *models.JoinRequest
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		jr, err = r.review(ctx, tx, requestID, models.JoinRequestRejected)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrJoinRequestNotPending) {
			return jr, err
		}
		return nil, err
	}
	return jr, nil
}
