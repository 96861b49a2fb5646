package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTokenTTL is the default lifetime for session tokens.
// Tokens are stateless, so expiry is the only thing that ends a session;
// keep this short.
const DefaultSessionTokenTTL = 30 * time.Minute

// Authentication Method Reference values carried in the "amr" claim.
const (
	AMRPassword = "pwd"
	AMRTOTP     = "totp"
	AMREmailOTP = "otp"
	AMRBackup   = "backup"
)

// Claims are the session-token claims used across the service. Changes
// stay additive to keep previously issued tokens parseable.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated identity.
	Email string `json:"email,omitempty"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Role is the identity's default role ("manager" or "member").
	Role string `json:"role,omitempty"`

	// AMR lists the authentication methods used for this session:
	// 		"pwd":    password
	//		"totp":   authenticator-app code
	//		"otp":    emailed one-time code
	//		"backup": single-use backup code
	// Mostly for audit logs, but lets handlers require a second factor
	// for sensitive operations later.
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a fresh session.
func NewSessionClaims(
	subject, email, name, role string,
	amr []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Name:  name,
		Role:  role,
		AMR:   amr,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer against the expected value. An empty
// expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
