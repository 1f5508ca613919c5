package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/repositories"
	"github.com/Dosada05/event-manager/storage"
)

var joinCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestGenerateJoinCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := generateJoinCode()
		if err != nil {
			t.Fatalf("generateJoinCode: %v", err)
		}
		if !joinCodePattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, joinCodePattern)
		}
		seen[code] = true
	}
	if len(seen) < 190 {
		t.Fatalf("only %d distinct codes out of 200", len(seen))
	}
}

func TestCreateEventDefaults(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)

	if event.Sport != models.SportBasketball {
		t.Errorf("sport = %q, want basketball", event.Sport)
	}
	if event.Status != models.EventStatusUpcoming {
		t.Errorf("status = %q, want upcoming", event.Status)
	}
	if event.CreatedBy != owner.UserID {
		t.Errorf("created_by = %q, want %q", event.CreatedBy, owner.UserID)
	}
	if !joinCodePattern.MatchString(event.JoinCode) {
		t.Errorf("join code %q has wrong format", event.JoinCode)
	}
}

func TestCreateEventRegeneratesCollidingJoinCode(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	svc := env.events.(*eventService)

	codes := []string{"AAAA1111", "AAAA1111", "BBBB2222"}
	svc.generateCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	first := env.createEvent(t, owner, false)
	second := env.createEvent(t, owner, false)
	if first.JoinCode != "AAAA1111" || second.JoinCode != "BBBB2222" {
		t.Fatalf("join codes = %s, %s", first.JoinCode, second.JoinCode)
	}
}

func TestCreateEventGivesUpAfterBoundedAttempts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	svc := env.events.(*eventService)
	svc.generateCode = func() (string, error) { return "SAME0000", nil }

	env.createEvent(t, owner, false)
	start := time.Now().Add(time.Hour)
	_, err := env.events.CreateEvent(context.Background(), owner, CreateEventInput{
		Title: "Again", StartDate: start, EndDate: start, Venue: "Park",
	})
	if !errors.Is(err, ErrJoinCodeExhausted) {
		t.Fatalf("error = %v, want ErrJoinCodeExhausted", err)
	}
}

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	start := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		input CreateEventInput
	}{
		{"missing title", CreateEventInput{StartDate: start, EndDate: start, Venue: "V"}},
		{"end before start", CreateEventInput{Title: "T", StartDate: start, EndDate: start.Add(-time.Minute), Venue: "V"}},
		{"unknown sport", CreateEventInput{Title: "T", StartDate: start, EndDate: start, Venue: "V", Sport: "chess"}},
		{"unknown status", CreateEventInput{Title: "T", StartDate: start, EndDate: start, Venue: "V", Status: "paused"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.events.CreateEvent(context.Background(), owner, tt.input)
			assertKind(t, err, ErrValidationFailed)
		})
	}

	_, err := env.events.CreateEvent(context.Background(), nil, CreateEventInput{})
	assertKind(t, err, ErrUnauthorized)
}

func TestGetEventByJoinCodeIgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)

	got, err := env.events.GetEventByJoinCode(context.Background(), strings.ToLower(event.JoinCode))
	if err != nil {
		t.Fatalf("GetEventByJoinCode: %v", err)
	}
	if got.ID != event.ID {
		t.Fatalf("got event %s, want %s", got.ID, event.ID)
	}
	if _, err := env.events.GetEventByJoinCode(context.Background(), "ZZZZZZZZ"); err != ErrInvalidJoinCode {
		t.Fatalf("unknown code error = %v", err)
	}
}

func TestGetEventByIDIncludesDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	member := env.signIn(t, "member")
	waiting := env.signIn(t, "waiting")
	event := env.createEvent(t, owner, true)

	env.admit(t, owner, member, event)
	if _, err := env.joins.RequestToJoinEvent(ctx, waiting, JoinEventInput{JoinCode: event.JoinCode, RequestedRole: models.ParticipantRoleCoach}); err != nil {
		t.Fatalf("RequestToJoinEvent: %v", err)
	}
	if _, err := env.teams.CreateTeam(ctx, event.ID, "Red"); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if _, err := env.announcements.CreateAnnouncement(ctx, owner, CreateAnnouncementInput{
		EventID: event.ID, Title: "Hello", Content: "Welcome", Priority: models.PriorityLow,
	}); err != nil {
		t.Fatalf("CreateAnnouncement: %v", err)
	}

	got, err := env.events.GetEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if len(got.PendingRequests) != 1 || got.PendingRequests[0].UserID != waiting.UserID {
		t.Errorf("pending requests = %+v", got.PendingRequests)
	}
	if len(got.Participants) != 1 || got.Participants[0].UserID != member.UserID {
		t.Errorf("participants = %+v", got.Participants)
	}
	if len(got.Teams) != 1 || len(got.Announcements) != 1 {
		t.Errorf("teams = %d, announcements = %d", len(got.Teams), len(got.Announcements))
	}

	if _, err := env.events.GetEventByID(ctx, "missing"); err != ErrEventNotFound {
		t.Fatalf("missing event error = %v", err)
	}
}

func TestUpdateEventStatusOnlyByOrganizer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	other := env.signIn(t, "other")
	event := env.createEvent(t, owner, false)

	_, err := env.events.UpdateEventStatus(ctx, other, event.ID, models.EventStatusCancelled)
	assertKind(t, err, ErrForbiddenOperation)

	_, err = env.events.UpdateEventStatus(ctx, owner, event.ID, "bogus")
	assertKind(t, err, ErrValidationFailed)

	updated, err := env.events.UpdateEventStatus(ctx, owner, event.ID, models.EventStatusCancelled)
	if err != nil {
		t.Fatalf("UpdateEventStatus: %v", err)
	}
	if updated.Status != models.EventStatusCancelled {
		t.Fatalf("status = %q", updated.Status)
	}
}

type fakeUploader struct {
	objects map[string][]byte
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.objects[key] = body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func TestUploadLogo(t *testing.T) {
	store := repositories.NewMemoryStore()
	repos := store.Repositories()
	uploader := newFakeUploader()
	logger := discardLogger()
	auth := NewAuthService(repos.Users, repos.Sessions, "test-secret", time.Hour, logger)
	events := NewEventService(repos, uploader, logger)
	env := &testEnv{repos: repos, auth: auth, events: events}

	ctx := context.Background()
	owner := env.signIn(t, "owner")
	other := env.signIn(t, "other")
	event := env.createEvent(t, owner, false)

	_, err := events.UploadLogo(ctx, owner, event.ID, "application/pdf", bytes.NewReader([]byte("x")))
	if err != ErrUnsupportedLogoType {
		t.Fatalf("pdf upload error = %v", err)
	}
	_, err = events.UploadLogo(ctx, other, event.ID, "image/png", bytes.NewReader([]byte("x")))
	assertKind(t, err, ErrForbiddenOperation)

	first, err := events.UploadLogo(ctx, owner, event.ID, "image/png", bytes.NewReader([]byte("png-1")))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if first.LogoURL == nil || !strings.HasPrefix(*first.LogoURL, "https://cdn.test/events/"+event.ID+"/logo-") {
		t.Fatalf("logo url = %v", first.LogoURL)
	}

	second, err := events.UploadLogo(ctx, owner, event.ID, "image/jpeg", bytes.NewReader([]byte("jpg-2")))
	if err != nil {
		t.Fatalf("second UploadLogo: %v", err)
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != *first.LogoKey {
		t.Fatalf("deleted = %v, want previous key %s", uploader.deleted, *first.LogoKey)
	}

	got, err := events.GetEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if got.LogoURL == nil || *got.LogoURL != *second.LogoURL {
		t.Fatalf("stored logo url = %v, want %v", got.LogoURL, *second.LogoURL)
	}
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)

	_, err := env.events.UploadLogo(context.Background(), owner, event.ID, "image/png", bytes.NewReader(nil))
	if err != ErrLogoStorageDisabled {
		t.Fatalf("error = %v, want ErrLogoStorageDisabled", err)
	}
}
