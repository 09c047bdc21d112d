package domain

import "time"

// Session is the identity carried by a verified session token. It is never
// persisted; only revoked token ids are remembered until they expire.
type Session struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TTL returns how long the session stays valid from now.
func (s *Session) TTL() time.Duration {
	return time.Until(s.ExpiresAt)
}
