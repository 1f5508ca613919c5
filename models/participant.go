package models

import "time"

type ParticipantRole string

const (
	ParticipantRolePlayer ParticipantRole = "player"
	ParticipantRoleCoach  ParticipantRole = "coach"
	ParticipantRoleAdmin  ParticipantRole = "admin"
)

func (r ParticipantRole) Valid() bool {
	switch r {
	case ParticipantRolePlayer, ParticipantRoleCoach, ParticipantRoleAdmin:
		return true
	}
	return false
}

// EventParticipant is an approved member of an event. TeamID, when set, points to a
// team of the same event.
type EventParticipant struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	UserName string          `json:"user_name"`
	EventID  string          `json:"event_id"`
	Role     ParticipantRole `json:"role"`
	TeamID   *string         `json:"team_id,omitempty"`
	JoinedAt time.Time       `json:"joined_at"`
}
