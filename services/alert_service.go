package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
)

// AlertService is the read side of alerts. Alerts are written only by the notification
// fan-out.
type AlertService interface {
	GetAlerts(ctx context.Context, session *models.Session, limit, offset int) ([]*models.Alert, error)
	GetUnreadAlertsCount(ctx context.Context, session *models.Session) (int, error)
	MarkAlertAsRead(ctx context.Context, session *models.Session, alertID string) error
	MarkAllAlertsAsRead(ctx context.Context, session *models.Session) (int64, error)
}

type alertService struct {
	alertRepo repositories.AlertRepository
}

func NewAlertService(alertRepo repositories.AlertRepository) AlertService {
	return &alertService{alertRepo: alertRepo}
}

func (s *alertService) GetAlerts(ctx context.Context, session *models.Session, limit, offset int) ([]*models.Alert, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if limit < 0 || offset < 0 {
		return nil, validationError("limit and offset must not be negative")
	}
	alerts, err := s.alertRepo.ListByUser(ctx, session.UserID, repositories.AlertListOptions{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (s *alertService) GetUnreadAlertsCount(ctx context.Context, session *models.Session) (int, error) {
	if err := requireSession(session); err != nil {
		return 0, err
	}
	count, err := s.alertRepo.CountUnread(ctx, session.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

func (s *alertService) MarkAlertAsRead(ctx context.Context, session *models.Session, alertID string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if err := s.alertRepo.MarkRead(ctx, session.UserID, alertID); err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("failed to mark alert %s as read: %w", alertID, err)
	}
	return nil
}

func (s *alertService) MarkAllAlertsAsRead(ctx context.Context, session *models.Session) (int64, error) {
	if err := requireSession(session); err != nil {
		return 0, err
	}
	updated, err := s.alertRepo.MarkAllRead(ctx, session.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts as read: %w", err)
	}
	return updated, nil
}
