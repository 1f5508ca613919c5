package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/notifications"
	"github.com/Dosada05/event-manager/repositories"
)

type TeamService interface {
	// CreateTeam adds a team with no members. Team names need not be unique within an event.
	CreateTeam(ctx context.Context, eventID, name string) (*models.Team, error)
	// AssignParticipantToTeam moves the participant into teamID, leaving any previous
	// team of the same event, and emits TeamAssigned.
	AssignParticipantToTeam(ctx context.Context, eventID, participantID, teamID string) (*repositories.Assignment, error)
	ListTeams(ctx context.Context, eventID string) ([]*models.Team, error)
}

type teamService struct {
	eventRepo repositories.EventRepository
	teamRepo  repositories.TeamRepository
	publisher notifications.Publisher
	logger    *slog.Logger
}

func NewTeamService(repos repositories.Repositories, publisher notifications.Publisher, logger *slog.Logger) TeamService {
	return &teamService{
		eventRepo: repos.Events,
		teamRepo:  repos.Teams,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *teamService) event(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	return event, nil
}

func (s *teamService) CreateTeam(ctx context.Context, eventID, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if len(name) > 100 {
		return nil, validationError("name must be at most 100 characters")
	}
	if _, err := s.event(ctx, eventID); err != nil {
		return nil, err
	}

	team := &models.Team{Name: name, EventID: eventID}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", slog.String("event_id", eventID), slog.String("team_id", team.ID))
	return team, nil
}

func (s *teamService) AssignParticipantToTeam(ctx context.Context, eventID, participantID, teamID string) (*repositories.Assignment, error) {
	event, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.teamRepo.AssignMember(ctx, eventID, participantID, teamID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to assign participant %s to team %s: %w", participantID, teamID, err)
	}

	attrs := []any{
		slog.String("event_id", eventID),
		slog.String("participant_id", participantID),
		slog.String("team_id", teamID),
	}
	if assignment.PreviousTeamID != nil {
		attrs = append(attrs, slog.String("previous_team_id", *assignment.PreviousTeamID))
	}
	s.logger.InfoContext(ctx, "participant assigned to team", attrs...)

	s.publisher.Publish(ctx, models.TeamAssigned{
		Event:          *event,
		Team:           assignment.Team,
		Participant:    assignment.Participant,
		PreviousTeamID: assignment.PreviousTeamID,
	})
	return assignment, nil
}

func (s *teamService) ListTeams(ctx context.Context, eventID string) ([]*models.Team, error) {
	if _, err := s.event(ctx, eventID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of event %s: %w", eventID, err)
	}
	return teams, nil
}
