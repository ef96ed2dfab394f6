package security

import "time"

// Test secrets for unit tests only. Do not use in production.
const (
	testAccessSecret  = "test-access-secret-0123456789"
	testRefreshSecret = "test-refresh-secret-0123456789"
)

// NewTestTokenProvider returns a TokenProvider using fixed test secrets,
// a 15 minute access TTL and a 24 hour refresh TTL. For unit tests only.
func NewTestTokenProvider() *TokenProvider {
	return NewTokenProvider(testAccessSecret, testRefreshSecret, "test-issuer", "test-audience", 15*time.Minute, 24*time.Hour)
}
