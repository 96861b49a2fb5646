package domain

import "time"

// Account-level capability. Managers may create teams; the role a user
// holds inside a particular team lives on the membership row.
const (
	RoleManager = "manager"
	RoleMember  = "member"
)

type User struct {
	ID            string
	Email         string // unique, stored lowercased
	Name          string
	PasswordHash  string     // argon2 encoded
	Role          string     // "manager" or "member"
	TOTPSecret    *string    // TOTP secret (nullable, base32 encoded)
	TOTPEnabledAt *time.Time // Timestamp when 2FA was activated (nullable)
	TOTPLastStep  int64      // Last consumed TOTP time step, guards replay
	VerifiedAt    *time.Time // Timestamp when the email was confirmed (nullable)
	Active        bool
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
