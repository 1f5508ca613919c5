package models

import "time"

// Session is an authenticated login. It is created by Login and destroyed by Logout;
// a session past ExpiresAt is treated as destroyed.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	User *User `json:"user,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
