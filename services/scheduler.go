package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
	"github.com/robfig/cron/v3"
)

// SessionPurger removes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler runs housekeeping jobs: event status progression and session cleanup.
// Jobs never produce alerts.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	eventRepo repositories.EventRepository
	sessions  SessionPurger
	now       func() time.Time
	timeout   time.Duration
	logger    *slog.Logger
}

// NewScheduler takes a six-field cron expression (seconds first).
func NewScheduler(spec string, eventRepo repositories.EventRepository, sessions SessionPurger, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:      spec,
		eventRepo: eventRepo,
		sessions:  sessions,
		now:       func() time.Time { return time.Now().UTC() },
		timeout:   time.Minute,
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("failed to schedule housekeeping job %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", slog.String("spec", s.spec))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunNow(ctx)
}

// RunNow runs every job once on the calling goroutine.
func (s *Scheduler) RunNow(ctx context.Context) {
	started, completed, err := s.AdvanceEventStatuses(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "event status job failed", slog.Any("error", err))
	} else if started+completed > 0 {
		s.logger.InfoContext(ctx, "event statuses advanced", slog.Int("started", started), slog.Int("completed", completed))
	}

	removed, err := s.sessions.PurgeExpiredSessions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "session purge job failed", slog.Any("error", err))
	} else if removed > 0 {
		s.logger.InfoContext(ctx, "expired sessions purged", slog.Int64("removed", removed))
	}
}

// AdvanceEventStatuses moves upcoming events whose start has passed to ongoing and ongoing
// events whose end has passed to completed. Cancelled and completed events are left alone.
func (s *Scheduler) AdvanceEventStatuses(ctx context.Context) (started, completed int, err error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list events: %w", err)
	}

	now := s.now()
	for _, e := range events {
		next := e.Status
		switch e.Status {
		case models.EventStatusUpcoming:
			if !now.Before(e.EndDate) {
				next = models.EventStatusCompleted
			} else if !now.Before(e.StartDate) {
				next = models.EventStatusOngoing
			}
		case models.EventStatusOngoing:
			if !now.Before(e.EndDate) {
				next = models.EventStatusCompleted
			}
		}
		if next == e.Status {
			continue
		}
		if err := s.eventRepo.UpdateStatus(ctx, e.ID, next); err != nil {
			return started, completed, fmt.Errorf("failed to update status of event %s: %w", e.ID, err)
		}
		if next == models.EventStatusOngoing {
			started++
		} else {
			completed++
		}
	}
	return started, completed, nil
}
