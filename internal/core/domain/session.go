package domain

import "time"

// Session binds a random opaque token to a user for one authenticated client
// context. The token is rotated in place on re-login; the owning user never
// changes for the lifetime of the row.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Cookies   bool      `json:"cookies"`
	LastSeen  time.Time `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session's expiration instant has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionWithUser pairs a session with its owning user, as returned by
// read-joined store lookups.
type SessionWithUser struct {
	Session Session
	User    User
}
