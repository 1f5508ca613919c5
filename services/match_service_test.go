package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/notifications"
)

func strPtr(s string) *string { return &s }

func TestIndividualMatchAlertsBothPlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	u1 := env.signIn(t, "p1")
	u2 := env.signIn(t, "p2")
	event := env.createEvent(t, owner, false)
	p1 := env.admit(t, owner, u1, event)
	p2 := env.admit(t, owner, u2, event)

	match, err := env.matches.CreateMatch(ctx, CreateMatchInput{
		EventID:   event.ID,
		Title:     "Semi final",
		PlayerAID: &p1.ID,
		PlayerBID: &p2.ID,
		StartTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if match.TeamA != "Name p1" || match.TeamB != "Name p2" {
		t.Fatalf("side names = %q, %q", match.TeamA, match.TeamB)
	}
	if match.Status != models.MatchStatusScheduled || match.Sport != event.Sport {
		t.Fatalf("status = %q, sport = %q", match.Status, match.Sport)
	}

	tests := []struct {
		session *models.Session
		message string
	}{
		{u1, `You have a match: "Semi final" vs Name p2`},
		{u2, `You have a match: "Semi final" vs Name p1`},
	}
	for _, tt := range tests {
		alerts := env.alertsOf(t, tt.session)
		if len(alerts) != 1 {
			t.Fatalf("alerts = %d, want 1", len(alerts))
		}
		a := alerts[0]
		if a.Type != models.AlertMatchUpcoming || a.Title != "New Match Scheduled" || a.Message != tt.message {
			t.Errorf("alert = %+v", a)
		}
		if a.MatchID == nil || *a.MatchID != match.ID {
			t.Errorf("match id = %v", a.MatchID)
		}
	}
	if got := len(env.alertsOf(t, owner)); got != 0 {
		t.Fatalf("owner alerts = %d", got)
	}
}

func TestTeamMatchAlertsEveryMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, true)
	t1, _ := env.teams.CreateTeam(ctx, event.ID, "T1")
	t2, _ := env.teams.CreateTeam(ctx, event.ID, "T2")

	sessions := map[string]*models.Session{}
	for name, team := range map[string]string{"a": t1.ID, "b": t1.ID, "c": t2.ID} {
		s := env.signIn(t, name)
		sessions[name] = s
		p := env.admit(t, owner, s, event)
		if _, err := env.teams.AssignParticipantToTeam(ctx, event.ID, p.ID, team); err != nil {
			t.Fatalf("assign %s: %v", name, err)
		}
	}
	before := map[string]int{}
	for name, s := range sessions {
		before[name] = len(env.alertsOf(t, s))
	}

	match, err := env.matches.CreateMatch(ctx, CreateMatchInput{
		EventID:   event.ID,
		Title:     "Final",
		TeamAID:   &t1.ID,
		TeamBID:   &t2.ID,
		StartTime: time.Now().Add(time.Hour),
		Status:    models.MatchStatusOngoing,
		Sport:     models.SportVolleyball,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if match.TeamA != "T1" || match.TeamB != "T2" || match.Sport != models.SportVolleyball {
		t.Fatalf("match = %+v", match)
	}

	want := map[string]string{
		"a": `Your team "T1" has a match: "Final" vs T2`,
		"b": `Your team "T1" has a match: "Final" vs T2`,
		"c": `Your team "T2" has a match: "Final" vs T1`,
	}
	total := 0
	for name, s := range sessions {
		alerts := env.alertsOf(t, s)
		added := len(alerts) - before[name]
		total += added
		if added != 1 {
			t.Fatalf("%s got %d new alerts", name, added)
		}
		if alerts[0].Title != "New Team Match Scheduled" || alerts[0].Message != want[name] {
			t.Errorf("%s alert = %+v", name, alerts[0])
		}
	}
	if total != 3 {
		t.Fatalf("match alerts = %d, want 3", total)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	individual := env.createEvent(t, owner, false)
	teamEvent := env.createEvent(t, owner, true)
	otherEvent := env.createEvent(t, owner, false)

	p1 := env.admit(t, owner, env.signIn(t, "p1"), individual)
	p2 := env.admit(t, owner, env.signIn(t, "p2"), individual)
	outsider := env.admit(t, owner, env.signIn(t, "p3"), otherEvent)
	ta, _ := env.teams.CreateTeam(ctx, teamEvent.ID, "A")
	tb, _ := env.teams.CreateTeam(ctx, teamEvent.ID, "B")

	start := time.Now().Add(time.Hour)
	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"missing title", CreateMatchInput{EventID: individual.ID, PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start}},
		{"missing start", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID}},
		{"no sides", CreateMatchInput{EventID: individual.ID, Title: "M", StartTime: start}},
		{"mixed sides", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, TeamBID: &tb.ID, StartTime: start}},
		{"half a pair", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, StartTime: start}},
		{"same player twice", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p1.ID, StartTime: start}},
		{"player from another event", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &outsider.ID, StartTime: start}},
		{"teams in individual event", CreateMatchInput{EventID: individual.ID, Title: "M", TeamAID: &ta.ID, TeamBID: &tb.ID, StartTime: start}},
		{"players in team event", CreateMatchInput{EventID: teamEvent.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start}},
		{"same team twice", CreateMatchInput{EventID: teamEvent.ID, Title: "M", TeamAID: &ta.ID, TeamBID: &ta.ID, StartTime: start}},
		{"unknown team", CreateMatchInput{EventID: teamEvent.ID, Title: "M", TeamAID: &ta.ID, TeamBID: strPtr("missing"), StartTime: start}},
		{"completed initial status", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start, Status: models.MatchStatusCompleted}},
		{"unknown sport", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start, Sport: "chess"}},
		{"bad detailed score", CreateMatchInput{EventID: individual.ID, Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start, DetailedScore: json.RawMessage(`{`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.matches.CreateMatch(ctx, tt.input)
			assertKind(t, err, ErrValidationFailed)
		})
	}

	_, err := env.matches.CreateMatch(ctx, CreateMatchInput{EventID: "missing", Title: "M", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: start})
	if err != ErrEventNotFound {
		t.Fatalf("unknown event error = %v", err)
	}

	matches, _ := env.matches.ListMatches(ctx)
	if len(matches) != 0 {
		t.Fatalf("matches stored after failures = %d", len(matches))
	}
}

func TestUpdateMatchStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)
	p1 := env.admit(t, owner, env.signIn(t, "p1"), event)
	p2 := env.admit(t, owner, env.signIn(t, "p2"), event)

	match, err := env.matches.CreateMatch(ctx, CreateMatchInput{
		EventID: event.ID, Title: "Final", PlayerAID: &p1.ID, PlayerBID: &p2.ID,
		StartTime:     time.Now(),
		Sport:         models.SportTennis,
		DetailedScore: json.RawMessage(`{"sets":["6-4"],"games":[6,4]}`),
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	scoreA := models.NumericScore(2)
	ongoing, err := env.matches.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusOngoing, ScoreA: &scoreA})
	if err != nil {
		t.Fatalf("UpdateMatchStatus ongoing: %v", err)
	}
	if ongoing.EndTime != nil {
		t.Fatalf("ongoing match has end time %v", ongoing.EndTime)
	}
	if ongoing.ScoreA == nil || ongoing.ScoreA.Value != "2" || ongoing.ScoreB != nil {
		t.Fatalf("scores = %+v, %+v", ongoing.ScoreA, ongoing.ScoreB)
	}

	scoreB := models.TextScore("walkover")
	completed, err := env.matches.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusCompleted, ScoreB: &scoreB})
	if err != nil {
		t.Fatalf("UpdateMatchStatus completed: %v", err)
	}
	if completed.EndTime == nil {
		t.Fatal("completed match has no end time")
	}
	if completed.ScoreA == nil || completed.ScoreA.Value != "2" {
		t.Fatalf("score A lost: %+v", completed.ScoreA)
	}
	if completed.ScoreB == nil || completed.ScoreB.Value != "walkover" || completed.ScoreB.Numeric {
		t.Fatalf("score B = %+v", completed.ScoreB)
	}

	reopened, err := env.matches.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusScheduled})
	if err != nil {
		t.Fatalf("UpdateMatchStatus scheduled: %v", err)
	}
	if reopened.EndTime == nil || !reopened.EndTime.Equal(*completed.EndTime) {
		t.Fatalf("end time changed by a non-completing transition: %v", reopened.EndTime)
	}

	detail, err := reopened.DecodeDetailedScore()
	if err != nil {
		t.Fatalf("DecodeDetailedScore: %v", err)
	}
	if tennis, ok := detail.(*models.TennisScore); !ok || len(tennis.Sets) != 1 {
		t.Fatalf("detail = %#v", detail)
	}

	if _, err := env.matches.UpdateMatchStatus(ctx, "missing", UpdateMatchStatusInput{Status: models.MatchStatusOngoing}); err != ErrMatchNotFound {
		t.Fatalf("unknown match error = %v", err)
	}
	_, err = env.matches.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: "paused"})
	assertKind(t, err, ErrValidationFailed)

	byEvent, err := env.matches.ListMatchesByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListMatchesByEvent: %v", err)
	}
	if len(byEvent) != 1 {
		t.Fatalf("matches = %d", len(byEvent))
	}
}

func TestCompletingTwiceRestampsEndTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "owner")
	event := env.createEvent(t, owner, false)
	p1 := env.admit(t, owner, env.signIn(t, "p1"), event)
	p2 := env.admit(t, owner, env.signIn(t, "p2"), event)

	clock := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	svc := NewMatchService(env.repos, notifications.NopPublisher{}, discardLogger()).(*matchService)
	svc.now = func() time.Time { return clock }

	match, err := svc.CreateMatch(ctx, CreateMatchInput{
		EventID: event.ID, Title: "Final", PlayerAID: &p1.ID, PlayerBID: &p2.ID, StartTime: clock.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	first, err := svc.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusCompleted})
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if first.EndTime == nil || !first.EndTime.Equal(clock) {
		t.Fatalf("first end time = %v, want %v", first.EndTime, clock)
	}

	clock = clock.Add(10 * time.Minute)
	second, err := svc.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusCompleted})
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if second.EndTime == nil || !second.EndTime.Equal(clock) {
		t.Fatalf("second end time = %v, want %v", second.EndTime, clock)
	}

	ongoing, err := svc.UpdateMatchStatus(ctx, match.ID, UpdateMatchStatusInput{Status: models.MatchStatusOngoing})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if ongoing.EndTime == nil || !ongoing.EndTime.Equal(clock) {
		t.Fatalf("non-completing update changed end time to %v", ongoing.EndTime)
	}
}
