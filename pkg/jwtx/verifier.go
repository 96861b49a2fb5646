package jwtx

import (
	"errors"
)

// Verifier validates a token string and gives you back the claims if it's
// legit. Callers must treat every error the same way at the edge ("not
// authenticated"); the distinct sentinels exist for logs and tests.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// NewVerifierHS256 creates a verifier sharing the signer's secret. Issuer
// is enforced when non-empty.
func NewVerifierHS256(secret []byte, issuer string) (Verifier, error) {
	return newHS256Verifier(secret, issuer)
}
