package repositories

import "database/sql"

// Repositories bundles every repository of one backend.
type Repositories struct {
	Users         UserRepository
	Sessions      SessionRepository
	Events        EventRepository
	JoinRequests  JoinRequestRepository
	Participants  ParticipantRepository
	Teams         TeamRepository
	Matches       MatchRepository
	Announcements AnnouncementRepository
	Alerts        AlertRepository
}

func NewPostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users:         NewPostgresUserRepository(db),
		Sessions:      NewPostgresSessionRepository(db),
		Events:        NewPostgresEventRepository(db),
		JoinRequests:  NewPostgresJoinRequestRepository(db),
		Participants:  NewPostgresParticipantRepository(db),
		Teams:         NewPostgresTeamRepository(db),
		Matches:       NewPostgresMatchRepository(db),
		Announcements: NewPostgresAnnouncementRepository(db),
		Alerts:        NewPostgresAlertRepository(db),
	}
}
