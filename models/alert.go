package models

import "time"

type AlertType string

const (
	AlertMatchUpcoming AlertType = "match_upcoming"
	AlertAnnouncement  AlertType = "announcement"
	AlertTeamAssigned  AlertType = "team_assigned"
	AlertEventUpdate   AlertType = "event_update"
	AlertMatchResult   AlertType = "match_result"
)

// Alert is a per-user notification. Alerts are only produced by the notification
// fan-out, never directly by a user action.
type Alert struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Type           AlertType `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	EventID        *string   `json:"event_id,omitempty"`
	EventTitle     *string   `json:"event_title,omitempty"`
	MatchID        *string   `json:"match_id,omitempty"`
	AnnouncementID *string   `json:"announcement_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
