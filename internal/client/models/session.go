package models

import "time"

// User identifies the signed-in account holder.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Session is the signed-in identity plus its time-limited access credential.
// The credential is an opaque bearer token; it is never refreshed silently,
// expiry forces re-authorization.
type Session struct {
	User        User
	AccessToken string
	ExpiresAt   time.Time
}

// IsExpired reports whether the access credential is no longer usable at
// the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
