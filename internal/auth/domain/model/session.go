package model

import "time"

// Session represents one authenticated login. The ID doubles as the bearer
// token presented by clients, so it must come from a cryptographically
// random source.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ExpiredAt reports whether the session is expired at the given instant.
// Expiry is strict: a session whose expiry equals now is already expired.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
