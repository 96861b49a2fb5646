package domain

import "time"

// Second-factor delivery channels.
const (
	ChannelTOTP  = "totp"
	ChannelEmail = "email"
)

// Challenge is a pending second-factor challenge created after a correct
// password when 2FA is enabled. At most one exists per user; a newer login
// replaces any earlier row.
type Challenge struct {
	ID              string // ULID, doubles as the opaque challenge token
	UserID          string
	Channel         string     // "totp" or "email"
	CodeFingerprint *string    // Fingerprint of the emailed code (email channel only)
	CodeExpiresAt   *time.Time // Emailed code expiry, always before ExpiresAt
	Attempts        int        // Failed verification count (max 5 to prevent brute force)
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// SecondFactorChallenge is returned when authentication needs a second factor
type SecondFactorChallenge struct {
	SecondFactorRequired bool      `json:"second_factor_required"` // always true
	ChallengeToken       string    `json:"challenge_token"`        // ULID reference token
	Channel              string    `json:"channel"`                // "totp" or "email"
	ExpiresAt            time.Time `json:"expires_at"`
}

// TOTPEnrollment carries the provisioning material handed back from 2FA
// enrollment. The secret is not considered active until one code verifies.
type TOTPEnrollment struct {
	Secret  string // Base32 encoded secret for TOTP
	URI     string // otpauth:// URL for QR code generation
	Issuer  string // Issuer name (e.g., service name)
	Account string // Account name (e.g., user email)
}
