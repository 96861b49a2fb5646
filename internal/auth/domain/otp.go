package domain

import "time"

// One-time code purposes.
const (
	OTPPurposeRegistration  = "registration"
	OTPPurposePasswordReset = "password_reset"
)

// OTPCode is an emailed one-time code. One active row exists per
// (user, purpose); a resend replaces it.
type OTPCode struct {
	ID              string
	UserID          string
	Purpose         string
	CodeFingerprint string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt       time.Time
	CreatedAt       time.Time
}
