package model

import "time"

// Session ties a bearer token to an account for a bounded time window.
// The token is the credential the client presents; ID is internal only.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
