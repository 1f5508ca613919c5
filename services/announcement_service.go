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
	"github.com/Dosada05/event-manager/utils"
)

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, session *models.Session, input CreateAnnouncementInput) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	ListAnnouncementsByEvent(ctx context.Context, eventID string) ([]*models.Announcement, error)
}

type CreateAnnouncementInput struct {
	EventID  string                      `json:"-"`
	Title    string                      `json:"title" validate:"notblank,max=200"`
	Content  string                      `json:"content" validate:"notblank,max=10000"`
	Priority models.AnnouncementPriority `json:"priority" validate:"oneof=low medium high"`
}

type announcementService struct {
	eventRepo        repositories.EventRepository
	userRepo         repositories.UserRepository
	announcementRepo repositories.AnnouncementRepository
	publisher        notifications.Publisher
	logger           *slog.Logger
}

func NewAnnouncementService(repos repositories.Repositories, publisher notifications.Publisher, logger *slog.Logger) AnnouncementService {
	return &announcementService{
		eventRepo:        repos.Events,
		userRepo:         repos.Users,
		announcementRepo: repos.Announcements,
		publisher:        publisher,
		logger:           logger,
	}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, session *models.Session, input CreateAnnouncementInput) (*models.Announcement, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := utils.ValidateStruct(input); err != nil {
		return nil, validationError("%s", err.Error())
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", input.EventID, err)
	}

	author := session.User
	if author == nil {
		author, err = s.userRepo.GetByID(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrSessionInvalid
			}
			return nil, fmt.Errorf("failed to load announcement author: %w", err)
		}
	}

	announcement := &models.Announcement{
		Title:         input.Title,
		Content:       input.Content,
		EventID:       event.ID,
		EventTitle:    event.Title,
		CreatedBy:     author.ID,
		CreatedByName: author.Name,
		Priority:      input.Priority,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.InfoContext(ctx, "announcement created",
		slog.String("event_id", event.ID),
		slog.String("announcement_id", announcement.ID),
		slog.String("priority", string(announcement.Priority)),
	)
	s.publisher.Publish(ctx, models.AnnouncementPosted{Event: *event, Announcement: *announcement})
	return announcement, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	announcements, err := s.announcementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

func (s *announcementService) ListAnnouncementsByEvent(ctx context.Context, eventID string) ([]*models.Announcement, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	announcements, err := s.announcementRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements of event %s: %w", eventID, err)
	}
	return announcements, nil
}
