package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
	"github.com/Dosada05/event-manager/storage"
	"github.com/Dosada05/event-manager/utils"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	joinCodeLength   = 8
	// Collisions are negligible at the expected scale; this only bounds a broken generator.
	maxJoinCodeAttempts = 32
)

type EventService interface {
	CreateEvent(ctx context.Context, session *models.Session, input CreateEventInput) (*models.Event, error)
	GetEvents(ctx context.Context) ([]*models.Event, error)
	// GetEventByID returns the event with its pending requests, participants, teams and
	// announcements.
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	GetEventByJoinCode(ctx context.Context, code string) (*models.Event, error)
	UpdateEventStatus(ctx context.Context, session *models.Session, id string, status models.EventStatus) (*models.Event, error)
	UploadLogo(ctx context.Context, session *models.Session, id string, contentType string, body io.Reader) (*models.Event, error)
	ListParticipants(ctx context.Context, eventID string) ([]*models.EventParticipant, error)
}

type CreateEventInput struct {
	Title       string             `json:"title" validate:"notblank,max=200"`
	Description string             `json:"description" validate:"max=5000"`
	StartDate   time.Time          `json:"start_date" validate:"required"`
	EndDate     time.Time          `json:"end_date" validate:"required,gtefield=StartDate"`
	Venue       string             `json:"venue" validate:"notblank,max=200"`
	Sport       models.SportType   `json:"sport"`
	IsTeamEvent bool               `json:"is_team_event"`
	Status      models.EventStatus `json:"status"`
}

type eventService struct {
	eventRepo        repositories.EventRepository
	joinRequestRepo  repositories.JoinRequestRepository
	participantRepo  repositories.ParticipantRepository
	teamRepo         repositories.TeamRepository
	announcementRepo repositories.AnnouncementRepository
	uploader         storage.FileUploader
	generateCode     func() (string, error)
	now              func() time.Time
	logger           *slog.Logger
}

// NewEventService builds the event service. uploader may be nil, which disables logo uploads.
func NewEventService(repos repositories.Repositories, uploader storage.FileUploader, logger *slog.Logger) EventService {
	return &eventService{
		eventRepo:        repos.Events,
		joinRequestRepo:  repos.JoinRequests,
		participantRepo:  repos.Participants,
		teamRepo:         repos.Teams,
		announcementRepo: repos.Announcements,
		uploader:         uploader,
		generateCode:     generateJoinCode,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           logger,
	}
}

// generateJoinCode samples every character of the code uniformly from joinCodeAlphabet.
func generateJoinCode() (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	var b strings.Builder
	b.Grow(joinCodeLength)
	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random join code: %w", err)
		}
		b.WriteByte(joinCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func (s *eventService) CreateEvent(ctx context.Context, session *models.Session, input CreateEventInput) (*models.Event, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Venue = strings.TrimSpace(input.Venue)
	if err := utils.ValidateStruct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}
	// Defaults: basketball, upcoming.
	if input.Sport == "" {
		input.Sport = models.SportBasketball
	}
	if !input.Sport.Valid() {
		return nil, validationError("unsupported sport %q", input.Sport)
	}
	if input.Status == "" {
		input.Status = models.EventStatusUpcoming
	}
	if !input.Status.Valid() {
		return nil, validationError("invalid event status %q", input.Status)
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		Venue:       input.Venue,
		Status:      input.Status,
		CreatedBy:   session.UserID,
		IsTeamEvent: input.IsTeamEvent,
		Sport:       input.Sport,
	}

	// The repository reports code collisions; draw a new code and retry.
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, err
		}
		event.JoinCode = code

		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			s.logger.InfoContext(ctx, "event created",
				slog.String("event_id", event.ID),
				slog.String("user_id", session.UserID),
				slog.Int("join_code_attempts", attempt+1),
			)
			return event, nil
		}
		if errors.Is(err, repositories.ErrEventJoinCodeConflict) {
			continue
		}
		if errors.Is(err, repositories.ErrEventCreatorInvalid) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.ErrorContext(ctx, "join code attempts exhausted", slog.Int("attempts", maxJoinCodeAttempts))
	return nil, ErrJoinCodeExhausted
}

func (s *eventService) GetEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	for _, e := range events {
		s.attachLogoURL(e)
	}
	return events, nil
}

func (s *eventService) getEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	s.attachLogoURL(event)
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	pending := models.JoinRequestPending
	requests, err := s.joinRequestRepo.ListByEvent(ctx, id, &pending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests of event %s: %w", id, err)
	}
	participants, err := s.participantRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of event %s: %w", id, err)
	}
	teams, err := s.teamRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of event %s: %w", id, err)
	}
	announcements, err := s.announcementRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements of event %s: %w", id, err)
	}

	event.PendingRequests = make([]models.JoinRequest, 0, len(requests))
	for _, r := range requests {
		event.PendingRequests = append(event.PendingRequests, *r)
	}
	event.Participants = make([]models.EventParticipant, 0, len(participants))
	for _, p := range participants {
		event.Participants = append(event.Participants, *p)
	}
	event.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		event.Teams = append(event.Teams, *t)
	}
	event.Announcements = make([]models.Announcement, 0, len(announcements))
	for _, a := range announcements {
		event.Announcements = append(event.Announcements, *a)
	}
	return event, nil
}

func (s *eventService) GetEventByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidJoinCode
	}
	event, err := s.eventRepo.GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to get event by join code: %w", err)
	}
	s.attachLogoURL(event)
	return event, nil
}

func (s *eventService) UpdateEventStatus(ctx context.Context, session *models.Session, id string, status models.EventStatus) (*models.Event, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, validationError("invalid event status %q", status)
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != session.UserID {
		return nil, ErrNotEventOrganizer
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update status of event %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "event status updated",
		slog.String("event_id", id),
		slog.String("from", string(event.Status)),
		slog.String("to", string(status)),
	)
	event.Status = status
	return event, nil
}

func (s *eventService) UploadLogo(ctx context.Context, session *models.Session, id string, contentType string, body io.Reader) (*models.Event, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	ext, ok := storage.LogoExtension(contentType)
	if !ok {
		return nil, ErrUnsupportedLogoType
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != session.UserID {
		return nil, ErrNotEventOrganizer
	}

	key := storage.EventLogoKey(event.ID, s.now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo of event %s: %w", id, err)
	}
	if err := s.eventRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned logo", slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to store logo key of event %s: %w", id, err)
	}

	if event.LogoKey != nil && *event.LogoKey != result.Key {
		if err := s.uploader.Delete(ctx, *event.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to remove previous logo", slog.String("key", *event.LogoKey), slog.Any("error", err))
		}
	}

	event.LogoKey = &result.Key
	s.attachLogoURL(event)
	s.logger.InfoContext(ctx, "event logo uploaded", slog.String("event_id", id), slog.String("key", result.Key))
	return event, nil
}

func (s *eventService) ListParticipants(ctx context.Context, eventID string) ([]*models.EventParticipant, error) {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants of event %s: %w", eventID, err)
	}
	return participants, nil
}

func (s *eventService) attachLogoURL(event *models.Event) {
	if s.uploader == nil || event.LogoKey == nil {
		return
	}
	if u := s.uploader.GetPublicURL(*event.LogoKey); u != "" {
		event.LogoURL = &u
	}
}
