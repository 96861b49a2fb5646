package cryptox

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Set up a temporary pepper file for testing
	pepperPath := filepath.Join(os.TempDir(), "test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Contains(t, parts[3], "m=")
			require.Contains(t, parts[3], "t=")
			require.Contains(t, parts[3], "p=")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	for _, h := range []string{hash1, hash2} {
		ok, err := VerifyPassword(password, h)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.wrongPassword, hash)
			require.NoError(t, err, "a mismatch is not an error")
			require.False(t, ok)
		})
	}
}

func TestVerifyPassword_MutatedHash(t *testing.T) {
	password := "correct-password"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	// Flip one bit of the digest part; verification must fail.
	parts := strings.Split(hash, "$")
	raw, err := base64.RawStdEncoding.DecodeString(parts[5])
	require.NoError(t, err)
	raw[0] ^= 0x01
	parts[5] = base64.RawStdEncoding.EncodeToString(raw)

	ok, err := VerifyPassword(password, strings.Join(parts, "$"))
	require.NoError(t, err)
	require.False(t, ok, "single-bit mutation must not verify")
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("test-password", tt.invalidHash)
			require.Error(t, err, "malformed stored hash is an error, not a mismatch")
		})
	}
}

func TestVerifyPassword_ParameterCompatibility(t *testing.T) {
	// Hashes carry their own parameters so older credentials keep verifying
	// if the package defaults change.
	password := "test-password"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.Contains(t, hash, "m=19456")
	require.Contains(t, hash, "t=2")
	require.Contains(t, hash, "p=1")

	ok, err := VerifyPassword(password, hash)
	require.NoError(t, err)
	require.True(t, ok)
}
