package repositories

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/event-manager/db"
	"github.com/Dosada05/event-manager/models"
	"github.com/google/uuid"
)

// postgresFixture runs against DATABASE_URL with migrations applied. Every fixture uses
// fresh usernames and join codes so runs can share one database.
func postgresFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := db.RunMigrations(dsn); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	ctx := context.Background()
	conn, err := db.Connect(ctx, db.Options{DSN: dsn})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	repos := NewPostgresRepositories(conn)

	suffix := uuid.NewString()[:8]
	admin := &models.User{Username: "coach-" + suffix, Name: "Coach", Role: models.RoleAdmin, PasswordHash: "x"}
	player := &models.User{Username: "player-" + suffix, Name: "Player One", Role: models.RoleAdmin, PasswordHash: "x"}
	for _, u := range []*models.User{admin, player} {
		if err := repos.Users.Create(ctx, u); err != nil {
			t.Fatalf("create user %s: %v", u.Username, err)
		}
	}

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	event := &models.Event{
		Title:       "Spring Cup",
		StartDate:   start,
		EndDate:     start.Add(3 * time.Hour),
		Venue:       "Arena",
		Status:      models.EventStatusUpcoming,
		CreatedBy:   admin.ID,
		JoinCode:    strings.ToUpper(suffix),
		IsTeamEvent: true,
		Sport:       models.SportFootball,
	}
	if err := repos.Events.Create(ctx, event); err != nil {
		t.Fatalf("create event: %v", err)
	}
	return &fixture{repos: repos, user: admin, player: player, event: event}
}

func TestPostgresJoinRequestDuplicateReturnsExisting(t *testing.T) {
	f := postgresFixture(t)
	ctx := context.Background()

	first, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, UserName: f.player.Name, EventID: f.event.ID, RequestedRole: models.ParticipantRolePlayer,
	})
	if err != nil {
		t.Fatalf("first request: %v", err)
	}

	existing, err := f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, UserName: f.player.Name, EventID: f.event.ID, RequestedRole: models.ParticipantRoleCoach,
	})
	if !errors.Is(err, ErrJoinRequestExists) {
		t.Fatalf("second request error = %v, want ErrJoinRequestExists", err)
	}
	if existing == nil || existing.ID != first.ID || existing.Status != models.JoinRequestPending {
		t.Fatalf("existing = %+v, want pending request %s", existing, first.ID)
	}

	requests, err := f.repos.JoinRequests.ListByEvent(ctx, f.event.ID, nil)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("stored requests = %d, want 1", len(requests))
	}

	if _, _, err := f.repos.JoinRequests.Approve(ctx, first.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	existing, err = f.repos.JoinRequests.Create(ctx, &models.JoinRequest{
		UserID: f.player.ID, UserName: f.player.Name, EventID: f.event.ID, RequestedRole: models.ParticipantRolePlayer,
	})
	if !errors.Is(err, ErrJoinRequestExists) || existing == nil || existing.Status != models.JoinRequestApproved {
		t.Fatalf("request after approval = %+v, %v", existing, err)
	}
}

func TestPostgresAssignMemberMovesBetweenTeams(t *testing.T) {
	f := postgresFixture(t)
	ctx := context.Background()
	p := f.approvedParticipant(t, f.player)

	red := &models.Team{Name: "Red", EventID: f.event.ID}
	blue := &models.Team{Name: "Blue", EventID: f.event.ID}
	for _, team := range []*models.Team{red, blue} {
		if err := f.repos.Teams.Create(ctx, team); err != nil {
			t.Fatalf("create team: %v", err)
		}
	}

	if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, red.ID); err != nil {
		t.Fatalf("assign red: %v", err)
	}
	moved, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, blue.ID)
	if err != nil {
		t.Fatalf("assign blue: %v", err)
	}
	if moved.PreviousTeamID == nil || *moved.PreviousTeamID != red.ID {
		t.Errorf("previous team = %v, want %s", moved.PreviousTeamID, red.ID)
	}
	if !moved.Team.HasMember(p.ID) || len(moved.Team.Members) != 1 {
		t.Errorf("assignment team members = %v", moved.Team.Members)
	}

	gotRed, err := f.repos.Teams.GetByID(ctx, red.ID)
	if err != nil {
		t.Fatalf("get red: %v", err)
	}
	if gotRed.HasMember(p.ID) {
		t.Error("participant still listed in previous team")
	}
	gotP, err := f.repos.Participants.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}
	if gotP.TeamID == nil || *gotP.TeamID != blue.ID {
		t.Errorf("participant team reference = %v, want %s", gotP.TeamID, blue.ID)
	}
}

func TestPostgresAssignMemberRejectsForeignTeam(t *testing.T) {
	f := postgresFixture(t)
	ctx := context.Background()
	p := f.approvedParticipant(t, f.player)

	other := &models.Event{
		Title:     "Other Cup",
		StartDate: f.event.StartDate,
		EndDate:   f.event.EndDate,
		Status:    models.EventStatusUpcoming,
		CreatedBy: f.user.ID,
		JoinCode:  strings.ToUpper(uuid.NewString()[:8]),
		Sport:     models.SportFootball,
	}
	if err := f.repos.Events.Create(ctx, other); err != nil {
		t.Fatalf("create other event: %v", err)
	}
	foreign := &models.Team{Name: "Away", EventID: other.ID}
	if err := f.repos.Teams.Create(ctx, foreign); err != nil {
		t.Fatalf("create foreign team: %v", err)
	}

	if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, p.ID, foreign.ID); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("foreign team error = %v, want ErrTeamNotFound", err)
	}
	home := &models.Team{Name: "Home", EventID: f.event.ID}
	if err := f.repos.Teams.Create(ctx, home); err != nil {
		t.Fatalf("create home team: %v", err)
	}
	if _, err := f.repos.Teams.AssignMember(ctx, f.event.ID, "missing", home.ID); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("unknown participant error = %v, want ErrParticipantNotFound", err)
	}

	gotP, _ := f.repos.Participants.GetByID(ctx, p.ID)
	if gotP.TeamID != nil {
		t.Errorf("failed assignments left team reference %v", *gotP.TeamID)
	}
}
