package authclient

import (
	"errors"
	"time"
)

// ErrSessionExpired is returned by Session methods once the session token
// has lapsed. There are no refresh tokens; log in again for a new Session.
var ErrSessionExpired = errors.New("authclient: session expired, log in again")

// Session represents an authenticated session. A Session is immutable: the
// token and expiry are fixed at creation, so a single Session is safe for
// concurrent use. Once the token expires every method returns
// ErrSessionExpired.
type Session struct {
	client *Client

	accessToken string
	expiresAt   time.Time
}

// newSession creates an authenticated session from a token response.
func newSession(client *Client, tokenResp *TokenResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	// Subtract a 30 second buffer so requests are refused client side just
	// before the server would start rejecting them.
	expiresAt = expiresAt.Add(-30 * time.Second)

	return &Session{
		client:      client,
		accessToken: tokenResp.AccessToken,
		expiresAt:   expiresAt,
	}
}

// validToken returns the access token, or ErrSessionExpired once lapsed.
func (s *Session) validToken() (string, error) {
	if !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// AccessToken returns the session's bearer token without checking expiry.
// For most use cases, prefer the Session methods.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// ExpiresAt returns when the session stops being usable.
func (s *Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// Expired reports whether the session token has lapsed.
func (s *Session) Expired() bool {
	return !time.Now().Before(s.expiresAt)
}
