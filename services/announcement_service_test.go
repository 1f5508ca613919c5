package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/event-manager/models"
)

func TestCreateAnnouncementFansOutTruncatedAlerts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	member := env.signIn(t, "member")
	other := env.signIn(t, "other")
	event := env.createEvent(t, owner, false)
	env.admit(t, owner, member, event)
	env.admit(t, owner, other, event)

	content := strings.Repeat("x", 150)
	announcement, err := env.announcements.CreateAnnouncement(ctx, owner, CreateAnnouncementInput{
		EventID: event.ID, Title: "Schedule", Content: content, Priority: models.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement: %v", err)
	}
	if announcement.CreatedBy != owner.UserID || announcement.CreatedByName != "Name owner" || announcement.EventTitle != "City Cup" {
		t.Fatalf("announcement = %+v", announcement)
	}

	for _, s := range []*models.Session{member, other} {
		alerts := env.alertsOf(t, s)
		if len(alerts) != 1 {
			t.Fatalf("alerts = %d, want 1", len(alerts))
		}
		a := alerts[0]
		if a.Type != models.AlertAnnouncement || a.Title != "New Announcement: Schedule" {
			t.Errorf("alert = %+v", a)
		}
		if a.Message != strings.Repeat("x", 100)+"..." {
			t.Errorf("message = %q", a.Message)
		}
		if a.AnnouncementID == nil || *a.AnnouncementID != announcement.ID {
			t.Errorf("announcement id = %v", a.AnnouncementID)
		}
	}
	if got := len(env.alertsOf(t, owner)); got != 0 {
		t.Fatalf("owner is not a participant but got %d alerts", got)
	}

	byEvent, err := env.announcements.ListAnnouncementsByEvent(ctx, event.ID)
	if err != nil || len(byEvent) != 1 {
		t.Fatalf("ListAnnouncementsByEvent = %d, %v", len(byEvent), err)
	}
	all, err := env.announcements.ListAnnouncements(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListAnnouncements = %d, %v", len(all), err)
	}
}

func TestCreateAnnouncementValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)

	tests := []struct {
		name  string
		input CreateAnnouncementInput
	}{
		{"missing title", CreateAnnouncementInput{EventID: event.ID, Content: "c", Priority: models.PriorityLow}},
		{"missing content", CreateAnnouncementInput{EventID: event.ID, Title: "t", Priority: models.PriorityLow}},
		{"bad priority", CreateAnnouncementInput{EventID: event.ID, Title: "t", Content: "c", Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.announcements.CreateAnnouncement(ctx, owner, tt.input)
			assertKind(t, err, ErrValidationFailed)
		})
	}

	_, err := env.announcements.CreateAnnouncement(ctx, owner, CreateAnnouncementInput{
		EventID: "missing", Title: "t", Content: "c", Priority: models.PriorityLow,
	})
	if err != ErrEventNotFound {
		t.Fatalf("unknown event error = %v", err)
	}
	_, err = env.announcements.CreateAnnouncement(ctx, nil, CreateAnnouncementInput{})
	assertKind(t, err, ErrUnauthorized)
}
