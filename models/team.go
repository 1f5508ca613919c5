package models

import "time"

// Team belongs to exactly one event. Members holds participant ids; a participant id
// appears in at most one team of an event.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventID   string    `json:"event_id"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Team) HasMember(participantID string) bool {
	for _, m := range t.Members {
		if m == participantID {
			return true
		}
	}
	return false
}
