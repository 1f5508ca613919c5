package repositories

import (
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/event-manager/models"
)

// MemoryStore keeps every collection in an insertion-ordered slice behind one lock.
// Writers hold the lock for the whole mutation and readers get copies, so a reader
// never sees a mutation half applied. State lives for the life of the process.
type MemoryStore struct {
	mu sync.RWMutex

	users         []*models.User
	sessions      map[string]*models.Session
	events        []*models.Event
	requests      []*models.JoinRequest
	participants  []*models.EventParticipant
	teams         []*models.Team
	matches       []*models.Match
	announcements []*models.Announcement
	alerts        []*models.Alert

	now   func() time.Time
	newID func() string
}

type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for generated timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDGenerator overrides how ids are generated.
func WithIDGenerator(gen func() string) MemoryOption {
	return func(s *MemoryStore) { s.newID = gen }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*models.Session),
		now:      nowUTC,
		newID:    newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		Users:         &memoryUserRepository{s},
		Sessions:      &memorySessionRepository{s},
		Events:        &memoryEventRepository{s},
		JoinRequests:  &memoryJoinRequestRepository{s},
		Participants:  &memoryParticipantRepository{s},
		Teams:         &memoryTeamRepository{s},
		Matches:       &memoryMatchRepository{s},
		Announcements: &memoryAnnouncementRepository{s},
		Alerts:        &memoryAlertRepository{s},
	}
}

// Lookups below expect the caller to hold s.mu.

func (s *MemoryStore) findEvent(id string) *models.Event {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *MemoryStore) findEventByCode(code string) *models.Event {
	for _, e := range s.events {
		if strings.EqualFold(e.JoinCode, code) {
			return e
		}
	}
	return nil
}

func (s *MemoryStore) findUser(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *MemoryStore) findRequest(id string) *models.JoinRequest {
	for _, r := range s.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *MemoryStore) findParticipant(id string) *models.EventParticipant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *MemoryStore) findTeam(id string) *models.Team {
	for _, t := range s.teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *MemoryStore) findMatch(id string) *models.Match {
	for _, m := range s.matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyEvent(e *models.Event) *models.Event {
	c := *e
	c.LogoKey = cloneString(e.LogoKey)
	c.LogoURL = nil
	c.PendingRequests = nil
	c.Participants = nil
	c.Teams = nil
	c.Announcements = nil
	return &c
}

func copyRequest(r *models.JoinRequest) *models.JoinRequest {
	c := *r
	c.ReviewedAt = cloneTime(r.ReviewedAt)
	return &c
}

func copyParticipant(p *models.EventParticipant) *models.EventParticipant {
	c := *p
	c.TeamID = cloneString(p.TeamID)
	return &c
}

func copyTeam(t *models.Team) *models.Team {
	c := *t
	c.Members = append(make([]string, 0, len(t.Members)), t.Members...)
	return &c
}

func copyScore(s *models.Score) *models.Score {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyMatch(m *models.Match) *models.Match {
	c := *m
	c.TeamAID = cloneString(m.TeamAID)
	c.TeamBID = cloneString(m.TeamBID)
	c.PlayerAID = cloneString(m.PlayerAID)
	c.PlayerBID = cloneString(m.PlayerBID)
	c.ScoreA = copyScore(m.ScoreA)
	c.ScoreB = copyScore(m.ScoreB)
	c.EndTime = cloneTime(m.EndTime)
	c.Notes = cloneString(m.Notes)
	if m.DetailedScore != nil {
		c.DetailedScore = append([]byte(nil), m.DetailedScore...)
	}
	return &c
}

func copyAnnouncement(a *models.Announcement) *models.Announcement {
	c := *a
	return &c
}

func copyAlert(a *models.Alert) *models.Alert {
	c := *a
	c.EventID = cloneString(a.EventID)
	c.EventTitle = cloneString(a.EventTitle)
	c.MatchID = cloneString(a.MatchID)
	c.AnnouncementID = cloneString(a.AnnouncementID)
	return &c
}
