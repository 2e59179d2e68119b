package models

import "time"

// AdminSession is what the session store keeps for a logged-in admin.
type AdminSession struct {
	ID      string    `json:"id"`
	LoginAt time.Time `json:"login_at"`
}

// Expired reports whether the session is older than ttl at now.
func (s AdminSession) Expired(now time.Time, ttl time.Duration) bool {
	if s.LoginAt.IsZero() {
		return true
	}
	return now.Sub(s.LoginAt) >= ttl
}

// ExpiresAt is the last instant the session is still valid.
func (s AdminSession) ExpiresAt(ttl time.Duration) time.Time {
	return s.LoginAt.Add(ttl)
}
