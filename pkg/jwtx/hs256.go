package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256SecretLen is the smallest shared secret accepted for HS256.
// Anything shorter undercuts the 256-bit MAC.
const MinHS256SecretLen = 32

// HS256Signer implements the Signer interface using HMAC-SHA256 with a
// server-held shared secret.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinHS256SecretLen {
		return nil, fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d", MinHS256SecretLen, len(secret))
	}

	return &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check that we actually hold a usable secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < MinHS256SecretLen {
		return errors.New("jwtx: HS256 secret too short")
	}
	return nil
}

// HS256Verifier validates tokens signed with the matching shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

func newHS256Verifier(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinHS256SecretLen {
		return nil, fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d", MinHS256SecretLen, len(secret))
	}

	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify parses and validates the compact token string. Every failure maps
// onto one of the package sentinels so callers never leak parser internals.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	// The parser already checked time claims; re-check explicitly along
	// with the issuer so the sentinel is ours.
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	default:
		return ErrMalformed
	}
}
