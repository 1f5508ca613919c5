package models

import "time"

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityHigh   AnnouncementPriority = "high"
)

func (p AnnouncementPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Announcement struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	EventID       string               `json:"event_id"`
	EventTitle    string               `json:"event_title"`
	CreatedBy     string               `json:"created_by"`
	CreatedByName string               `json:"created_by_name"`
	CreatedAt     time.Time            `json:"created_at"`
	Priority      AnnouncementPriority `json:"priority"`
}
