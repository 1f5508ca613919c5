package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/event-manager/models"
)

type fixture struct {
	repos  Repositories
	user   *models.User
	player *models.User
	event  *models.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := NewMemoryStore().Repositories()

	admin := &models.User{Username: "coach", Name: "Coach", Role: models.RoleAdmin}
	if err := repos.Users.Create(ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	player := &models.User{Username: "player", Name: "Player One", Role: models.RoleAdmin}
	if err := repos.Users.Create(ctx, player); err != nil {
		t.Fatalf("create player: %v", err)
	}
	event := &models.Event{
		Title:       "Spring Cup",
		Status:      models.EventStatusUpcoming,
		CreatedBy:   admin.ID,
		JoinCode:    "ABCD1234",
		IsTeamEvent: true,
		Sport:       models.SportFootball,
	}
	if err := repos.Events.Create(ctx, event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return &fixture{repos: repos, user: admin, player: player, event: event}
}

func (f *fixture) approvedParticipant(t *testing.T, user *models.User) *models.EventParticipant {
	t.Helper()
	ctx := context.Background()
	jr, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID:        user.ID,
		UserName:      user.Name,
		EventID:       f.event.ID,
		RequestedRole: models.ParticipantRolePlayer,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}
	_, p, err := f.repos.JoinRequests.Approve(ctx, jr.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	return p
}

func TestMemoryUserUsernameIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repos.Users.Create(ctx, &models.User{Username: "COACH", Name: "Other"})
	if !errors.Is(err, ErrUserUsernameConflict) {
		t.Fatalf("expected username conflict, got %v", err)
	}
	u, err := f.repos.Users.GetByUsername(ctx, "Coach")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if u.ID != f.user.ID {
		t.Errorf("got user %s, want %s", u.ID, f.user.ID)
	}
}

func TestMemoryEventJoinCodeConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repos.Events.Create(ctx, &models.Event{Title: "Other", CreatedBy: f.user.ID, JoinCode: "abcd1234"})
	if !errors.Is(err, ErrEventJoinCodeConflict) {
		t.Fatalf("expected join code conflict, got %v", err)
	}
	e, err := f.repos.Events.GetByJoinCode(ctx, "abcd1234")
	if err != nil {
		t.Fatalf("get by join code: %v", err)
	}
	if e.ID != f.event.ID {
		t.Errorf("got event %s, want %s", e.ID, f.event.ID)
	}
}

func TestMemoryEventCreatorMustExist(t *testing.T) {
	f := newFixture(t)
	err := f.repos.Events.Create(context.Background(), &models.Event{Title: "X", CreatedBy: "missing", JoinCode: "ZZZZ0000"})
	if !errors.Is(err, ErrEventCreatorInvalid) {
		t.Fatalf("expected creator invalid, got %v", err)
	}
}

func TestMemoryJoinRequestDuplicateReturnsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, EventID: f.event.ID, RequestedRole: models.ParticipantRolePlayer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	existing, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, EventID: f.event.ID, RequestedRole: models.ParticipantRoleCoach,
	})
	if !errors.Is(err, ErrJoinRequestExists) {
		t.Fatalf("expected exists, got %v", err)
	}
	if existing.ID != first.ID || existing.Status != models.JoinRequestPending {
		t.Errorf("unexpected existing request %+v", existing)
	}

	pending := models.JoinRequestPending
	list, _ := f.repos.JoinRequests.ListByEvent(ctx, f.event.ID, &pending)
	if len(list) != 1 {
		t.Errorf("expected 1 pending request, got %d", len(list))
	}
}

func TestMemoryJoinRequestConcurrentCreateKeepsOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
				UserID: f.player.ID, EventID: f.event.ID, RequestedRole: models.ParticipantRolePlayer,
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly one created request, got %d", created)
	}
}

func TestMemoryApproveCreatesParticipantOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	jr, _ := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, UserName: f.player.Name, EventID: f.event.ID, RequestedRole: models.ParticipantRoleCoach,
	})
	approved, p, err := f.repos.JoinRequests.Approve(ctx, jr.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.JoinRequestApproved || approved.ReviewedAt == nil {
		t.Errorf("unexpected approved request %+v", approved)
	}
	if p.Role != models.ParticipantRoleCoach || p.UserID != f.player.ID {
		t.Errorf("unexpected participant %+v", p)
	}

	if _, _, err := f.repos.JoinRequests.Approve(ctx, jr.ID); !errors.Is(err, ErrJoinRequestNotPending) {
		t.Fatalf("expected not pending on second approve, got %v", err)
	}
	if _, err := f.repos.JoinRequests.Reject(ctx, jr.ID); !errors.Is(err, ErrJoinRequestNotPending) {
		t.Fatalf("expected not pending on reject, got %v", err)
	}
	participants, _ := f.repos.Participants.ListByEvent(ctx, f.event.ID)
	if len(participants) != 1 {
		t.Errorf("expected one participant, got %d", len(participants))
	}
}

func TestMemoryAssignMemberMovesBetweenTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedParticipant(t, f.player)

	red := &models.Team{Name: "Red", EventID: f.event.ID}
	blue := &models.Team{Name: "Blue", EventID: f.event.ID}
	for _, team := range []*models.Team{red, blue} {
		if err := f.repos.Teams.Create(ctx, team); err != nil {
			t.Fatalf("create team: %v", err)
		}
	}

	first, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, red.ID)
	if err != nil {
		t.Fatalf("assign red: %v", err)
	}
	if first.PreviousTeamID != nil {
		t.Errorf("expected no previous team, got %v", *first.PreviousTeamID)
	}

	second, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, blue.ID)
	if err != nil {
		t.Fatalf("assign blue: %v", err)
	}
	if second.PreviousTeamID == nil || *second.PreviousTeamID != red.ID {
		t.Errorf("expected previous team %s, got %v", red.ID, second.PreviousTeamID)
	}

	gotRed, _ := f.repos.Teams.GetByID(ctx, red.ID)
	gotBlue, _ := f.repos.Teams.GetByID(ctx, blue.ID)
	if gotRed.HasMember(p.ID) {
		t.Error("participant still listed in previous team")
	}
	if !gotBlue.HasMember(p.ID) || len(gotBlue.Members) != 1 {
		t.Errorf("unexpected blue members %v", gotBlue.Members)
	}
	gotP, _ := f.repos.Participants.GetByID(ctx, p.ID)
	if gotP.TeamID == nil || *gotP.TeamID != blue.ID {
		t.Errorf("participant team reference not updated: %v", gotP.TeamID)
	}

	again, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, blue.ID)
	if err != nil {
		t.Fatalf("reassign same team: %v", err)
	}
	if len(again.Team.Members) != 1 {
		t.Errorf("same-team assignment duplicated member: %v", again.Team.Members)
	}
}

func TestMemoryAssignMemberRejectsForeignTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedParticipant(t, f.player)

	other := &models.Event{Title: "Other", CreatedBy: f.user.ID, JoinCode: "OTHER001"}
	if err := f.repos.Events.Create(ctx, other); err != nil {
		t.Fatalf("create event: %v", err)
	}
	foreign := &models.Team{Name: "Foreign", EventID: other.ID}
	if err := f.repos.Teams.Create(ctx, foreign); err != nil {
		t.Fatalf("create team: %v", err)
	}

	if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, foreign.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected team not found, got %v", err)
	}
	if _, err := f.repos.Teams.AssignMember(ctx, other.ID, p.ID, foreign.ID); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("expected participant not found, got %v", err)
	}
}

// Readers racing a stream of reassignments must always see the participant in exactly
// one team, never zero and never two.
func TestMemoryAssignMemberIsAtomicForReaders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.approvedParticipant(t, f.player)

	red := &models.Team{Name: "Red", EventID: f.event.ID}
	blue := &models.Team{Name: "Blue", EventID: f.event.ID}
	_ = f.repos.Teams.Create(ctx, red)
	_ = f.repos.Teams.Create(ctx, blue)
	if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, red.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		targets := []string{blue.ID, red.ID}
		for i := 0; i < 200; i++ {
			if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, targets[i%2]); err != nil {
				t.Errorf("assign: %v", err)
				return
			}
		}
	}()

	errs := make(chan error, 4)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				teams, _ := f.repos.Teams.ListByEvent(ctx, f.event.ID)
				count := 0
				for _, team := range teams {
					if team.HasMember(p.ID) {
						count++
					}
				}
				if count != 1 {
					errs <- fmt.Errorf("participant visible in %d teams", count)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestMemoryMatchUpdateStatusIsPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := &models.Match{
		Title:     "Final",
		TeamA:     "Red",
		TeamB:     "Blue",
		StartTime: time.Now().UTC(),
		Status:    models.MatchStatusScheduled,
		EventID:   f.event.ID,
		Sport:     models.SportFootball,
		ScoreA:    &models.Score{Value: "1", Numeric: true},
	}
	if err := f.repos.Matches.Create(ctx, m); err != nil {
		t.Fatalf("create match: %v", err)
	}

	scoreB := models.NumericScore(2)
	updated, err := f.repos.Matches.UpdateStatus(ctx, m.ID, MatchStatusUpdate{
		Status: models.MatchStatusOngoing,
		ScoreB: &scoreB,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ScoreA == nil || updated.ScoreA.Value != "1" {
		t.Errorf("score A should be untouched, got %+v", updated.ScoreA)
	}
	if updated.ScoreB == nil || updated.ScoreB.Value != "2" {
		t.Errorf("score B not applied, got %+v", updated.ScoreB)
	}
	if updated.EndTime != nil {
		t.Errorf("end time should stay unset")
	}

	if _, err := f.repos.Matches.UpdateStatus(ctx, "missing", MatchStatusUpdate{Status: models.MatchStatusCompleted}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryAlertsNewestFirstWithPaging(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repos := NewMemoryStore(WithClock(func() time.Time { return base })).Repositories()
	ctx := context.Background()

	older := &models.Alert{UserID: "u1", Type: models.AlertEventUpdate, Title: "old", CreatedAt: base.Add(-time.Hour)}
	tieFirst := &models.Alert{UserID: "u1", Type: models.AlertEventUpdate, Title: "tie-first"}
	tieSecond := &models.Alert{UserID: "u1", Type: models.AlertEventUpdate, Title: "tie-second"}
	otherUser := &models.Alert{UserID: "u2", Type: models.AlertEventUpdate, Title: "other"}
	if err := repos.Alerts.CreateBatch(ctx, []*models.Alert{older, tieFirst}); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if err := repos.Alerts.CreateBatch(ctx, []*models.Alert{tieSecond, otherUser}); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	got, _ := repos.Alerts.ListByUser(ctx, "u1", AlertListOptions{})
	want := []string{"tie-second", "tie-first", "old"}
	if len(got) != len(want) {
		t.Fatalf("got %d alerts, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, got[i].Title, title)
		}
	}

	page, _ := repos.Alerts.ListByUser(ctx, "u1", AlertListOptions{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].Title != "tie-first" {
		t.Errorf("unexpected page %+v", page)
	}
	empty, _ := repos.Alerts.ListByUser(ctx, "u1", AlertListOptions{Offset: 10})
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d", len(empty))
	}
}

func TestMemoryAlertMarkReadOwnership(t *testing.T) {
	repos := NewMemoryStore().Repositories()
	ctx := context.Background()

	a := &models.Alert{UserID: "u1", Type: models.AlertAnnouncement, Title: "hello"}
	b := &models.Alert{UserID: "u1", Type: models.AlertAnnouncement, Title: "again"}
	if err := repos.Alerts.CreateBatch(ctx, []*models.Alert{a, b}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repos.Alerts.MarkRead(ctx, "u2", a.ID); !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
	if err := repos.Alerts.MarkRead(ctx, "u1", a.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := repos.Alerts.MarkRead(ctx, "u1", a.ID); err != nil {
		t.Fatalf("mark read twice: %v", err)
	}
	if n, _ := repos.Alerts.CountUnread(ctx, "u1"); n != 1 {
		t.Errorf("unread = %d, want 1", n)
	}
	if n, _ := repos.Alerts.MarkAllRead(ctx, "u1"); n != 1 {
		t.Errorf("mark all updated %d, want 1", n)
	}
	if n, _ := repos.Alerts.CountUnread(ctx, "u1"); n != 0 {
		t.Errorf("unread = %d, want 0", n)
	}
}

func TestMemorySessionsExpire(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	live := &models.Session{UserID: f.user.ID, ExpiresAt: now.Add(time.Hour)}
	stale := &models.Session{UserID: f.user.ID, ExpiresAt: now.Add(-time.Minute)}
	_ = f.repos.Sessions.Create(ctx, live)
	_ = f.repos.Sessions.Create(ctx, stale)

	removed, err := f.repos.Sessions.DeleteExpired(ctx, now)
	if err != nil || removed != 1 {
		t.Fatalf("delete expired = %d, %v", removed, err)
	}
	if _, err := f.repos.Sessions.GetByID(ctx, stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session still present: %v", err)
	}
	if err := f.repos.Sessions.Delete(ctx, live.ID); err != nil {
		t.Errorf("delete live: %v", err)
	}
	if err := f.repos.Sessions.Create(ctx, &models.Session{UserID: "ghost"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected user not found, got %v", err)
	}
}
