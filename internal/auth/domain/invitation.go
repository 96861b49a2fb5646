package domain

import "time"

type TeamInvitation struct {
	ID        string
	TeamID    string
	Email     string // invited address, lowercased
	InviterID string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}
