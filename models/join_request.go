package models

import "time"

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest ties one user to one event. There is at most one per (user, event).
type JoinRequest struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	EventID       string            `json:"event_id"`
	RequestedRole ParticipantRole   `json:"requested_role"`
	Status        JoinRequestStatus `json:"status"`
	RequestedAt   time.Time         `json:"requested_at"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty"`
}
