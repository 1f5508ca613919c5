package models

import "time"

// EventStatus mirrors the event_status enum in the database.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

type SportType string

const (
	SportBasketball       SportType = "basketball"
	SportAmericanFootball SportType = "american-football"
	SportFootball         SportType = "football"
	SportTennis           SportType = "tennis"
	SportVolleyball       SportType = "volleyball"
	SportCricket          SportType = "cricket"
	SportBoxing           SportType = "boxing"
	SportSwimming         SportType = "swimming"
	SportGolf             SportType = "golf"
)

func (s SportType) Valid() bool {
	switch s {
	case SportBasketball, SportAmericanFootball, SportFootball, SportTennis, SportVolleyball,
		SportCricket, SportBoxing, SportSwimming, SportGolf:
		return true
	}
	return false
}

// Event is a sports event. JoinCode is unique across all events and never changes;
// IsTeamEvent is fixed at creation.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Venue       string      `json:"venue"`
	Status      EventStatus `json:"status"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	JoinCode    string      `json:"join_code"`
	IsTeamEvent bool        `json:"is_team_event"`
	Sport       SportType   `json:"sport"`
	LogoKey     *string     `json:"-"`
	LogoURL     *string     `json:"logo_url,omitempty"`

	// Populated by the service for detail views.
	PendingRequests []JoinRequest      `json:"pending_requests,omitempty"`
	Participants    []EventParticipant `json:"participants,omitempty"`
	Teams           []Team             `json:"teams,omitempty"`
	Announcements   []Announcement     `json:"announcements,omitempty"`
}
