package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
)

type JoinService interface {
	RequestToJoinEvent(ctx context.Context, session *models.Session, input JoinEventInput) (*JoinResult, error)
	ListRequests(ctx context.Context, session *models.Session, eventID string, status *models.JoinRequestStatus) ([]*models.JoinRequest, error)
	ApproveRequest(ctx context.Context, session *models.Session, eventID, requestID string) (*models.EventParticipant, error)
	RejectRequest(ctx context.Context, session *models.Session, eventID, requestID string) (*models.JoinRequest, error)
}

type JoinEventInput struct {
	JoinCode      string                 `json:"join_code"`
	RequestedRole models.ParticipantRole `json:"requested_role"`
}

type JoinResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	EventTitle string `json:"eventTitle,omitempty"`
}

type joinService struct {
	eventRepo       repositories.EventRepository
	joinRequestRepo repositories.JoinRequestRepository
	userRepo        repositories.UserRepository
	logger          *slog.Logger
}

func NewJoinService(repos repositories.Repositories, logger *slog.Logger) JoinService {
	return &joinService{
		eventRepo:       repos.Events,
		joinRequestRepo: repos.JoinRequests,
		userRepo:        repos.Users,
		logger:          logger,
	}
}

func (s *joinService) RequestToJoinEvent(ctx context.Context, session *models.Session, input JoinEventInput) (*JoinResult, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if !input.RequestedRole.Valid() {
		return nil, validationError("requested_role must be one of: player coach admin")
	}

	code := strings.TrimSpace(input.JoinCode)
	if code == "" {
		return nil, ErrInvalidJoinCode
	}
	event, err := s.eventRepo.GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to resolve join code: %w", err)
	}

	// The requester's display name is copied onto the request for the organizer's review list.
	userName, err := s.sessionUserName(ctx, session)
	if err != nil {
		return nil, err
	}

	req := &models.JoinRequest{
		UserID:        session.UserID,
		UserName:      userName,
		EventID:       event.ID,
		RequestedRole: input.RequestedRole,
	}
	existing, err := s.joinRequestRepo.Create(ctx, req)
	if err != nil {
		// One request per user and event; its status picks the conflict.
		if errors.Is(err, repositories.ErrJoinRequestExists) && existing != nil {
			return nil, duplicateRequestError(existing.Status)
		}
		// The session's user vanished between lookup and insert.
		if errors.Is(err, repositories.ErrJoinRequestInvalid) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	s.logger.InfoContext(ctx, "join request created",
		slog.String("event_id", event.ID),
		slog.String("user_id", session.UserID),
		slog.String("request_id", req.ID),
		slog.String("role", string(req.RequestedRole)),
	)
	return &JoinResult{
		Success: true,
		Message: fmt.Sprintf("Join request sent for \"%s\" as %s. Please wait for approval from the event organizer.",
			event.Title, req.RequestedRole),
		EventTitle: event.Title,
	}, nil
}

func duplicateRequestError(status models.JoinRequestStatus) error {
	switch status {
	case models.JoinRequestApproved:
		return ErrAlreadyParticipant
	case models.JoinRequestRejected:
		return ErrJoinRequestRejected
	default:
		return ErrJoinRequestPending
	}
}

func (s *joinService) sessionUserName(ctx context.Context, session *models.Session) (string, error) {
	if session.User != nil {
		return session.User.Name, nil
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrSessionInvalid
		}
		return "", fmt.Errorf("failed to load session user: %w", err)
	}
	return user.Name, nil
}

// organizerEvent loads eventID and checks that the session user created it.
func (s *joinService) organizerEvent(ctx context.Context, session *models.Session, eventID string) (*models.Event, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	if event.CreatedBy != session.UserID {
		return nil, ErrNotEventOrganizer
	}
	return event, nil
}

func (s *joinService) ListRequests(ctx context.Context, session *models.Session, eventID string, status *models.JoinRequestStatus) ([]*models.JoinRequest, error) {
	if status != nil {
		switch *status {
		case models.JoinRequestPending, models.JoinRequestApproved, models.JoinRequestRejected:
		default:
			return nil, validationError("status must be one of: pending approved rejected")
		}
	}
	if _, err := s.organizerEvent(ctx, session, eventID); err != nil {
		return nil, err
	}
	requests, err := s.joinRequestRepo.ListByEvent(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests of event %s: %w", eventID, err)
	}
	return requests, nil
}

// requestOfEvent loads a join request and hides requests of other events.
func (s *joinService) requestOfEvent(ctx context.Context, eventID, requestID string) (*models.JoinRequest, error) {
	req, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrJoinRequestNotFound) {
			return nil, ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("failed to get join request %s: %w", requestID, err)
	}
	if req.EventID != eventID {
		return nil, ErrJoinRequestNotFound
	}
	return req, nil
}

func (s *joinService) ApproveRequest(ctx context.Context, session *models.Session, eventID, requestID string) (*models.EventParticipant, error) {
	if _, err := s.organizerEvent(ctx, session, eventID); err != nil {
		return nil, err
	}
	if _, err := s.requestOfEvent(ctx, eventID, requestID); err != nil {
		return nil, err
	}

	_, participant, err := s.joinRequestRepo.Approve(ctx, requestID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrJoinRequestNotPending):
			return nil, ErrJoinRequestReviewed
		case errors.Is(err, repositories.ErrJoinRequestNotFound):
			return nil, ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("failed to approve join request %s: %w", requestID, err)
	}

	s.logger.InfoContext(ctx, "join request approved",
		slog.String("event_id", eventID),
		slog.String("request_id", requestID),
		slog.String("participant_id", participant.ID),
	)
	return participant, nil
}

func (s *joinService) RejectRequest(ctx context.Context, session *models.Session, eventID, requestID string) (*models.JoinRequest, error) {
	if _, err := s.organizerEvent(ctx, session, eventID); err != nil {
		return nil, err
	}
	if _, err := s.requestOfEvent(ctx, eventID, requestID); err != nil {
		return nil, err
	}

	req, err := s.joinRequestRepo.Reject(ctx, requestID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrJoinRequestNotPending):
			return nil, ErrJoinRequestReviewed
		case errors.Is(err, repositories.ErrJoinRequestNotFound):
			return nil, ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("failed to reject join request %s: %w", requestID, err)
	}

	s.logger.InfoContext(ctx, "join request rejected",
		slog.String("event_id", eventID),
		slog.String("request_id", requestID),
	)
	return req, nil
}
