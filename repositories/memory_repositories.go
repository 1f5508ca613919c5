package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/event-manager/models"
)

type memoryUserRepository struct{ s *MemoryStore }

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return ErrUserUsernameConflict
		}
	}
	user.ID = r.s.newID()
	user.CreatedAt = r.s.now()
	r.s.users = append(r.s.users, copyUser(user))
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.findUser(id); u != nil {
		return copyUser(u), nil
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return copyUser(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) List(ctx context.Context) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

type memorySessionRepository struct{ s *MemoryStore }

func (r *memorySessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findUser(session.UserID) == nil {
		return ErrUserNotFound
	}
	session.ID = r.s.newID()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.s.now()
	}
	stored := *session
	stored.User = nil
	r.s.sessions[stored.ID] = &stored
	return nil
}

func (r *memorySessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	c := *session
	return &c, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for id, session := range r.s.sessions {
		if session.Expired(now) {
			delete(r.s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

type memoryEventRepository struct{ s *MemoryStore }

func (r *memoryEventRepository) Create(ctx context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findEventByCode(event.JoinCode) != nil {
		return ErrEventJoinCodeConflict
	}
	if r.s.findUser(event.CreatedBy) == nil {
		return ErrEventCreatorInvalid
	}
	event.ID = r.s.newID()
	event.CreatedAt = r.s.now()
	r.s.events = append(r.s.events, copyEvent(event))
	return nil
}

func (r *memoryEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if e := r.s.findEvent(id); e != nil {
		return copyEvent(e), nil
	}
	return nil, ErrEventNotFound
}

func (r *memoryEventRepository) GetByJoinCode(ctx context.Context, code string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if e := r.s.findEventByCode(code); e != nil {
		return copyEvent(e), nil
	}
	return nil, ErrEventNotFound
}

func (r *memoryEventRepository) List(ctx context.Context) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	events := make([]*models.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		events = append(events, copyEvent(e))
	}
	return events, nil
}

func (r *memoryEventRepository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := r.s.findEvent(id)
	if e == nil {
		return ErrEventNotFound
	}
	e.Status = status
	return nil
}

func (r *memoryEventRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e := r.s.findEvent(id)
	if e == nil {
		return ErrEventNotFound
	}
	e.LogoKey = cloneString(logoKey)
	return nil
}

type memoryJoinRequestRepository struct{ s *MemoryStore }

func (r *memoryJoinRequestRepository) Create(ctx context.Context, req *models.JoinRequest) (*models.JoinRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.requests {
		if existing.UserID == req.UserID && existing.EventID == req.EventID {
			return copyRequest(existing), ErrJoinRequestExists
		}
	}
	if r.s.findUser(req.UserID) == nil || r.s.findEvent(req.EventID) == nil {
		return nil, ErrJoinRequestInvalid
	}
	req.ID = r.s.newID()
	req.Status = models.JoinRequestPending
	req.RequestedAt = r.s.now()
	req.ReviewedAt = nil
	r.s.requests = append(r.s.requests, copyRequest(req))
	return req, nil
}

func (r *memoryJoinRequestRepository) GetByID(ctx context.Context, id string) (*models.JoinRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if jr := r.s.findRequest(id); jr != nil {
		return copyRequest(jr), nil
	}
	return nil, ErrJoinRequestNotFound
}

func (r *memoryJoinRequestRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.JoinRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, jr := range r.s.requests {
		if jr.UserID == userID && jr.EventID == eventID {
			return copyRequest(jr), nil
		}
	}
	return nil, ErrJoinRequestNotFound
}

func (r *memoryJoinRequestRepository) ListByEvent(ctx context.Context, eventID string, statusFilter *models.JoinRequestStatus) ([]*models.JoinRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	requests := make([]*models.JoinRequest, 0)
	for _, jr := range r.s.requests {
		if jr.EventID != eventID {
			continue
		}
		if statusFilter != nil && jr.Status != *statusFilter {
			continue
		}
		requests = append(requests, copyRequest(jr))
	}
	return requests, nil
}

// review expects the caller to hold the write lock.
func (r *memoryJoinRequestRepository) review(requestID string, status models.JoinRequestStatus) (*models.JoinRequest, error) {
	jr := r.s.findRequest(requestID)
	if jr == nil {
		return nil, ErrJoinRequestNotFound
	}
	if jr.Status != models.JoinRequestPending {
		return copyRequest(jr), ErrJoinRequestNotPending
	}
	reviewedAt := r.s.now()
	jr.Status = status
	jr.ReviewedAt = &reviewedAt
	return jr, nil
}

func (r *memoryJoinRequestRepository) Approve(ctx context.Context, requestID string) (*models.JoinRequest, *models.EventParticipant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	jr, err := r.review(requestID, models.JoinRequestApproved)
	if err != nil {
		return jr, nil, err
	}
	participant := &models.EventParticipant{
		ID:       r.s.newID(),
		UserID:   jr.UserID,
		UserName: jr.UserName,
		EventID:  jr.EventID,
		Role:     jr.RequestedRole,
		JoinedAt: *jr.ReviewedAt,
	}
	r.s.participants = append(r.s.participants, participant)
	return copyRequest(jr), copyParticipant(participant), nil
}

func (r *memoryJoinRequestRepository) Reject(ctx context.Context, requestID string) (*models.JoinRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	jr, err := r.review(requestID, models.JoinRequestRejected)
	if err != nil {
		return jr, err
	}
	return copyRequest(jr), nil
}

type memoryParticipantRepository struct{ s *MemoryStore }

func (r *memoryParticipantRepository) GetByID(ctx context.Context, id string) (*models.EventParticipant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p := r.s.findParticipant(id); p != nil {
		return copyParticipant(p), nil
	}
	return nil, ErrParticipantNotFound
}

func (r *memoryParticipantRepository) FindByUserAndEvent(ctx context.Context, userID, eventID string) (*models.EventParticipant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.participants {
		if p.UserID == userID && p.EventID == eventID {
			return copyParticipant(p), nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (r *memoryParticipantRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.EventParticipant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	participants := make([]*models.EventParticipant, 0)
	for _, p := range r.s.participants {
		if p.EventID == eventID {
			participants = append(participants, copyParticipant(p))
		}
	}
	return participants, nil
}

type memoryTeamRepository struct{ s *MemoryStore }

func (r *memoryTeamRepository) Create(ctx context.Context, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findEvent(team.EventID) == nil {
		return ErrTeamEventInvalid
	}
	team.ID = r.s.newID()
	team.CreatedAt = r.s.now()
	team.Members = []string{}
	r.s.teams = append(r.s.teams, copyTeam(team))
	return nil
}

func (r *memoryTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if t := r.s.findTeam(id); t != nil {
		return copyTeam(t), nil
	}
	return nil, ErrTeamNotFound
}

func (r *memoryTeamRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teams := make([]*models.Team, 0)
	for _, t := range r.s.teams {
		if t.EventID == eventID {
			teams = append(teams, copyTeam(t))
		}
	}
	return teams, nil
}

func (r *memoryTeamRepository) AssignMember(ctx context.Context, eventID, participantID, teamID string) (*Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	team := r.s.findTeam(teamID)
	if team == nil || team.EventID != eventID {
		return nil, ErrTeamNotFound
	}
	participant := r.s.findParticipant(participantID)
	if participant == nil || participant.EventID != eventID {
		return nil, ErrParticipantNotFound
	}

	previous := cloneString(participant.TeamID)
	if previous == nil || *previous != teamID {
		if previous != nil {
			if old := r.s.findTeam(*previous); old != nil {
				old.Members = removeString(old.Members, participantID)
			}
		}
		participant.TeamID = &teamID
		if !team.HasMember(participantID) {
			team.Members = append(team.Members, participantID)
		}
	}

	return &Assignment{
		Team:           *copyTeam(team),
		Participant:    *copyParticipant(participant),
		PreviousTeamID: previous,
	}, nil
}

func removeString(values []string, target string) []string {
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

type memoryMatchRepository struct{ s *MemoryStore }

func (r *memoryMatchRepository) Create(ctx context.Context, match *models.Match) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findEvent(match.EventID) == nil {
		return ErrMatchEventInvalid
	}
	for _, id := range []*string{match.TeamAID, match.TeamBID} {
		if id != nil && r.s.findTeam(*id) == nil {
			return ErrMatchEventInvalid
		}
	}
	for _, id := range []*string{match.PlayerAID, match.PlayerBID} {
		if id != nil && r.s.findParticipant(*id) == nil {
			return ErrMatchEventInvalid
		}
	}
	match.ID = r.s.newID()
	match.CreatedAt = r.s.now()
	r.s.matches = append(r.s.matches, copyMatch(match))
	return nil
}

func (r *memoryMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if m := r.s.findMatch(id); m != nil {
		return copyMatch(m), nil
	}
	return nil, ErrMatchNotFound
}

func (r *memoryMatchRepository) list(keep func(*models.Match) bool) []*models.Match {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]*models.Match, 0)
	for _, m := range r.s.matches {
		if keep(m) {
			matches = append(matches, copyMatch(m))
		}
	}
	return matches
}

func (r *memoryMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	return r.list(func(*models.Match) bool { return true }), nil
}

func (r *memoryMatchRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Match, error) {
	return r.list(func(m *models.Match) bool { return m.EventID == eventID }), nil
}

func (r *memoryMatchRepository) UpdateStatus(ctx context.Context, id string, update MatchStatusUpdate) (*models.Match, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m := r.s.findMatch(id)
	if m == nil {
		return nil, ErrMatchNotFound
	}
	m.Status = update.Status
	if update.ScoreA != nil {
		m.ScoreA = copyScore(update.ScoreA)
	}
	if update.ScoreB != nil {
		m.ScoreB = copyScore(update.ScoreB)
	}
	if update.EndTime != nil {
		m.EndTime = cloneTime(update.EndTime)
	}
	return copyMatch(m), nil
}

type memoryAnnouncementRepository struct{ s *MemoryStore }

func (r *memoryAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findEvent(a.EventID) == nil {
		return ErrAnnouncementEventInvalid
	}
	a.ID = r.s.newID()
	a.CreatedAt = r.s.now()
	r.s.announcements = append(r.s.announcements, copyAnnouncement(a))
	return nil
}

func (r *memoryAnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	return r.list(""), nil
}

func (r *memoryAnnouncementRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Announcement, error) {
	return r.list(eventID), nil
}

// list returns announcements of eventID, or all of them when eventID is empty.
func (r *memoryAnnouncementRepository) list(eventID string) []*models.Announcement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Announcement, 0)
	for _, a := range r.s.announcements {
		if eventID == "" || a.EventID == eventID {
			out = append(out, copyAnnouncement(a))
		}
	}
	return out
}

type memoryAlertRepository struct{ s *MemoryStore }

func (r *memoryAlertRepository) CreateBatch(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for _, a := range alerts {
		a.ID = r.s.newID()
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		r.s.alerts = append(r.s.alerts, copyAlert(a))
	}
	return nil
}

func (r *memoryAlertRepository) ListByUser(ctx context.Context, userID string, opts AlertListOptions) ([]*models.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Walk backwards so a stable sort keeps later inserts first among equal timestamps.
	owned := make([]*models.Alert, 0)
	for i := len(r.s.alerts) - 1; i >= 0; i-- {
		if a := r.s.alerts[i]; a.UserID == userID {
			owned = append(owned, a)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(owned) {
			return []*models.Alert{}, nil
		}
		owned = owned[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(owned) {
		owned = owned[:opts.Limit]
	}

	out := make([]*models.Alert, 0, len(owned))
	for _, a := range owned {
		out = append(out, copyAlert(a))
	}
	return out, nil
}

func (r *memoryAlertRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, a := range r.s.alerts {
		if a.UserID == userID && !a.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memoryAlertRepository) MarkRead(ctx context.Context, userID, alertID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.alerts {
		if a.ID == alertID && a.UserID == userID {
			a.IsRead = true
			return nil
		}
	}
	return ErrAlertNotFound
}

func (r *memoryAlertRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for _, a := range r.s.alerts {
		if a.UserID == userID && !a.IsRead {
			a.IsRead = true
			updated++
		}
	}
	return updated, nil
}
