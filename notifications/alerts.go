package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
)

const announcementPreviewLength = 100

// AlertSink receives alerts right after they are stored.
type AlertSink interface {
	AlertsCreated(ctx context.Context, alerts []*models.Alert)
}

// AlertFanout turns domain events into per-user alerts.
type AlertFanout struct {
	alerts       repositories.AlertRepository
	participants repositories.ParticipantRepository
	teams        repositories.TeamRepository
	sinks        []AlertSink
	logger       *slog.Logger
}

func NewAlertFanout(
	alerts repositories.AlertRepository,
	participants repositories.ParticipantRepository,
	teams repositories.TeamRepository,
	logger *slog.Logger,
	sinks ...AlertSink,
) *AlertFanout {
	return &AlertFanout{
		alerts:       alerts,
		participants: participants,
		teams:        teams,
		sinks:        sinks,
		logger:       logger,
	}
}

func (f *AlertFanout) Name() string { return "alert_fanout" }

func (f *AlertFanout) Handle(ctx context.Context, event models.DomainEvent) error {
	var (
		alerts []*models.Alert
		err    error
	)
	switch e := event.(type) {
	case models.AnnouncementPosted:
		alerts, err = f.announcementAlerts(ctx, e)
	case models.TeamAssigned:
		alerts = f.teamAssignedAlerts(e)
	case models.MatchCreated:
		alerts, err = f.matchAlerts(ctx, e)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}
	if err := f.alerts.CreateBatch(ctx, alerts); err != nil {
		return fmt.Errorf("failed to store alerts: %w", err)
	}
	f.logger.DebugContext(ctx, "alerts created",
		slog.String("event_type", string(event.EventType())),
		slog.String("event_id", event.EventID()),
		slog.Int("count", len(alerts)),
	)
	for _, sink := range f.sinks {
		sink.AlertsCreated(ctx, alerts)
	}
	return nil
}

func newAlert(userID string, alertType models.AlertType, title, message string, event models.Event) *models.Alert {
	eventID, eventTitle := event.ID, event.Title
	return &models.Alert{
		UserID:     userID,
		Type:       alertType,
		Title:      title,
		Message:    message,
		EventID:    &eventID,
		EventTitle: &eventTitle,
	}
}

func (f *AlertFanout) announcementAlerts(ctx context.Context, e models.AnnouncementPosted) ([]*models.Alert, error) {
	participants, err := f.participants.ListByEvent(ctx, e.Event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	title := "New Announcement: " + e.Announcement.Title
	message := truncate(e.Announcement.Content, announcementPreviewLength)

	alerts := make([]*models.Alert, 0, len(participants))
	for _, p := range participants {
		a := newAlert(p.UserID, models.AlertAnnouncement, title, message, e.Event)
		announcementID := e.Announcement.ID
		a.AnnouncementID = &announcementID
		alerts = append(alerts, a)
	}
	return alerts, nil
}

func (f *AlertFanout) teamAssignedAlerts(e models.TeamAssigned) []*models.Alert {
	message := fmt.Sprintf("You have been assigned to team \"%s\" for event \"%s\"", e.Team.Name, e.Event.Title)
	return []*models.Alert{
		newAlert(e.Participant.UserID, models.AlertTeamAssigned, "Team Assignment", message, e.Event),
	}
}

func (f *AlertFanout) matchAlerts(ctx context.Context, e models.MatchCreated) ([]*models.Alert, error) {
	participants, err := f.participants.ListByEvent(ctx, e.Event.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	byID := make(map[string]*models.EventParticipant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	m := e.Match
	var alerts []*models.Alert
	add := func(participantID, title, message string) {
		p, ok := byID[participantID]
		if !ok {
			return
		}
		a := newAlert(p.UserID, models.AlertMatchUpcoming, title, message, e.Event)
		matchID := m.ID
		a.MatchID = &matchID
		alerts = append(alerts, a)
	}

	if m.PlayerAID != nil {
		add(*m.PlayerAID, "New Match Scheduled", fmt.Sprintf("You have a match: \"%s\" vs %s", m.Title, m.TeamB))
	}
	if m.PlayerBID != nil {
		add(*m.PlayerBID, "New Match Scheduled", fmt.Sprintf("You have a match: \"%s\" vs %s", m.Title, m.TeamA))
	}

	sides := []struct {
		teamID   *string
		opponent string
	}{
		{m.TeamAID, m.TeamB},
		{m.TeamBID, m.TeamA},
	}
	for _, side := range sides {
		if side.teamID == nil {
			continue
		}
		team, err := f.teams.GetByID(ctx, *side.teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %s: %w", *side.teamID, err)
		}
		message := fmt.Sprintf("Your team \"%s\" has a match: \"%s\" vs %s", team.Name, m.Title, side.opponent)
		for _, memberID := range team.Members {
			add(memberID, "New Team Match Scheduled", message)
		}
	}
	return alerts, nil
}

// truncate keeps the first n characters of s and marks the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
