package domain

import (
	"errors"
	"time"
)

// SessionTTL is the fixed lifetime of a session from issuance.
const SessionTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

// Session maps an opaque id handed to the client to a userId claim. A session
// with no resolvable claim confers no identity.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
