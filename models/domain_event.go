package models

// DomainEventType names a state change that other components may react to.
type DomainEventType string

const (
	DomainEventTeamAssigned       DomainEventType = "team.assigned"
	DomainEventMatchCreated       DomainEventType = "match.created"
	DomainEventAnnouncementPosted DomainEventType = "announcement.posted"
)

// DomainEvent is emitted by a mutation after it has been applied.
type DomainEvent interface {
	EventType() DomainEventType
	EventID() string
}

type TeamAssigned struct {
	Event       Event            `json:"event"`
	Team        Team             `json:"team"`
	Participant EventParticipant `json:"participant"`
	// PreviousTeamID is the team the participant was removed from, if any.
	PreviousTeamID *string `json:"previous_team_id,omitempty"`
}

func (TeamAssigned) EventType() DomainEventType { return DomainEventTeamAssigned }
func (e TeamAssigned) EventID() string          { return e.Event.ID }

type MatchCreated struct {
	Event Event `json:"event"`
	Match Match `json:"match"`
}

func (MatchCreated) EventType() DomainEventType { return DomainEventMatchCreated }
func (e MatchCreated) EventID() string          { return e.Event.ID }

type AnnouncementPosted struct {
	Event        Event        `json:"event"`
	Announcement Announcement `json:"announcement"`
}

func (AnnouncementPosted) EventType() DomainEventType { return DomainEventAnnouncementPosted }
func (e AnnouncementPosted) EventID() string          { return e.Event.ID }
