package domain

import "time"

// Session is a persisted login. Only SHA-256 hashes of the issued tokens are stored.
type Session struct {
	ID               string
	UserID           string
	TokenHash        string // hash of the access token issued at login
	RefreshTokenHash string // hash of the refresh token; lookup key for refresh and logout
	ExpiresAt        time.Time
	LastUsedAt       *time.Time
	CreatedAt        time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
