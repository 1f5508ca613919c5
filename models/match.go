package models

import (
	"encoding/json"
	"time"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusOngoing   MatchStatus = "ongoing"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusOngoing, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is played between two sides: two teams (TeamAID/TeamBID) in a team event or two
// participants (PlayerAID/PlayerBID) in an individual event. TeamA and TeamB hold the
// display names of the sides in both cases.
type Match struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	TeamA         string          `json:"team_a"`
	TeamB         string          `json:"team_b"`
	TeamAID       *string         `json:"team_a_id,omitempty"`
	TeamBID       *string         `json:"team_b_id,omitempty"`
	PlayerAID     *string         `json:"player_a_id,omitempty"`
	PlayerBID     *string         `json:"player_b_id,omitempty"`
	ScoreA        *Score          `json:"score_a,omitempty"`
	ScoreB        *Score          `json:"score_b,omitempty"`
	DetailedScore json.RawMessage `json:"detailed_score,omitempty"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	Status        MatchStatus     `json:"status"`
	EventID       string          `json:"event_id"`
	Notes         *string         `json:"notes,omitempty"`
	Sport         SportType       `json:"sport"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (m *Match) IsTeamMatch() bool {
	return m.TeamAID != nil && m.TeamBID != nil
}
