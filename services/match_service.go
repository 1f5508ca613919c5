package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/notifications"
	"github.com/Dosada05/event-manager/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	// UpdateMatchStatus always writes status; scores are written only when given.
	UpdateMatchStatus(ctx context.Context, matchID string, input UpdateMatchStatusInput) (*models.Match, error)
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	ListMatchesByEvent(ctx context.Context, eventID string) ([]*models.Match, error)
}

// CreateMatchInput names either two teams or two players, never both.
type CreateMatchInput struct {
	EventID       string             `json:"-"`
	Title         string             `json:"title"`
	TeamAID       *string            `json:"team_a_id,omitempty"`
	TeamBID       *string            `json:"team_b_id,omitempty"`
	PlayerAID     *string            `json:"player_a_id,omitempty"`
	PlayerBID     *string            `json:"player_b_id,omitempty"`
	StartTime     time.Time          `json:"start_time"`
	Status        models.MatchStatus `json:"status"`
	Sport         models.SportType   `json:"sport"`
	Notes         *string            `json:"notes,omitempty"`
	DetailedScore json.RawMessage    `json:"detailed_score,omitempty"`
}

type UpdateMatchStatusInput struct {
	Status models.MatchStatus `json:"status"`
	ScoreA *models.Score      `json:"score_a,omitempty"`
	ScoreB *models.Score      `json:"score_b,omitempty"`
}

type matchService struct {
	eventRepo       repositories.EventRepository
	teamRepo        repositories.TeamRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	publisher       notifications.Publisher
	now             func() time.Time
	logger          *slog.Logger
}

func NewMatchService(repos repositories.Repositories, publisher notifications.Publisher, logger *slog.Logger) MatchService {
	return &matchService{
		eventRepo:       repos.Events,
		teamRepo:        repos.Teams,
		participantRepo: repos.Participants,
		matchRepo:       repos.Matches,
		publisher:       publisher,
		now:             func() time.Time { return time.Now().UTC() },
		logger:          logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, validationError("title is required")
	}
	if input.StartTime.IsZero() {
		return nil, validationError("start_time is required")
	}
	if input.Status == "" {
		input.Status = models.MatchStatusScheduled
	}
	if input.Status != models.MatchStatusScheduled && input.Status != models.MatchStatusOngoing {
		return nil, validationError("status must be one of: scheduled ongoing")
	}
	if len(input.DetailedScore) > 0 && !json.Valid(input.DetailedScore) {
		return nil, validationError("detailed_score must be valid JSON")
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", input.EventID, err)
	}

	if input.Sport == "" {
		input.Sport = event.Sport
	}
	if !input.Sport.Valid() {
		return nil, validationError("unsupported sport %q", input.Sport)
	}

	match := &models.Match{
		Title:         input.Title,
		StartTime:     input.StartTime.UTC(),
		Status:        input.Status,
		EventID:       event.ID,
		Notes:         input.Notes,
		Sport:         input.Sport,
		DetailedScore: input.DetailedScore,
	}
	if err := s.resolveSides(ctx, event, input, match); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchEventInvalid) {
			return nil, validationError("match sides must belong to the event")
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		slog.String("event_id", event.ID),
		slog.String("match_id", match.ID),
		slog.Bool("team_match", match.IsTeamMatch()),
	)
	s.publisher.Publish(ctx, models.MatchCreated{Event: *event, Match: *match})
	return match, nil
}

// resolveSides checks the side pair against the event and fills in ids and display names.
func (s *matchService) resolveSides(ctx context.Context, event *models.Event, input CreateMatchInput, match *models.Match) error {
	hasTeams := input.TeamAID != nil || input.TeamBID != nil
	hasPlayers := input.PlayerAID != nil || input.PlayerBID != nil
	switch {
	case hasTeams && hasPlayers:
		return validationError("a match is between two teams or two players, not both")
	case !hasTeams && !hasPlayers:
		return validationError("a match needs two teams or two players")
	}

	if hasTeams {
		if !event.IsTeamEvent {
			return validationError("team matches are only allowed in team events")
		}
		if input.TeamAID == nil || input.TeamBID == nil {
			return validationError("team_a_id and team_b_id are both required")
		}
		if *input.TeamAID == *input.TeamBID {
			return validationError("a team cannot play against itself")
		}
		teamA, err := s.eventTeam(ctx, event.ID, *input.TeamAID, "team_a_id")
		if err != nil {
			return err
		}
		teamB, err := s.eventTeam(ctx, event.ID, *input.TeamBID, "team_b_id")
		if err != nil {
			return err
		}
		match.TeamAID, match.TeamBID = &teamA.ID, &teamB.ID
		match.TeamA, match.TeamB = teamA.Name, teamB.Name
		return nil
	}

	if event.IsTeamEvent {
		return validationError("player matches are only allowed in individual events")
	}
	if input.PlayerAID == nil || input.PlayerBID == nil {
		return validationError("player_a_id and player_b_id are both required")
	}
	if *input.PlayerAID == *input.PlayerBID {
		return validationError("a player cannot play against themselves")
	}
	playerA, err := s.eventParticipant(ctx, event.ID, *input.PlayerAID, "player_a_id")
	if err != nil {
		return err
	}
	playerB, err := s.eventParticipant(ctx, event.ID, *input.PlayerBID, "player_b_id")
	if err != nil {
		return err
	}
	match.PlayerAID, match.PlayerBID = &playerA.ID, &playerB.ID
	match.TeamA, match.TeamB = playerA.UserName, playerB.UserName
	return nil
}

func (s *matchService) eventTeam(ctx context.Context, eventID, teamID, field string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, validationError("%s does not name a team of this event", field)
		}
		return nil, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	if team.EventID != eventID {
		return nil, validationError("%s does not name a team of this event", field)
	}
	return team, nil
}

func (s *matchService) eventParticipant(ctx context.Context, eventID, participantID, field string) (*models.EventParticipant, error) {
	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, validationError("%s does not name a participant of this event", field)
		}
		return nil, fmt.Errorf("failed to get participant %s: %w", participantID, err)
	}
	if p.EventID != eventID {
		return nil, validationError("%s does not name a participant of this event", field)
	}
	return p, nil
}

func (s *matchService) UpdateMatchStatus(ctx context.Context, matchID string, input UpdateMatchStatusInput) (*models.Match, error) {
	if !input.Status.Valid() {
		return nil, validationError("status must be one of: scheduled ongoing completed cancelled")
	}

	update := repositories.MatchStatusUpdate{
		Status: input.Status,
		ScoreA: input.ScoreA,
		ScoreB: input.ScoreB,
	}
	// Every completing update records a fresh end time, including completed -> completed.
	if input.Status == models.MatchStatusCompleted {
		now := s.now()
		update.EndTime = &now
	}

	match, err := s.matchRepo.UpdateStatus(ctx, matchID, update)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match status updated",
		slog.String("match_id", matchID),
		slog.String("status", string(match.Status)),
	)
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) ListMatchesByEvent(ctx context.Context, eventID string) ([]*models.Match, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	matches, err := s.matchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of event %s: %w", eventID, err)
	}
	return matches, nil
}
