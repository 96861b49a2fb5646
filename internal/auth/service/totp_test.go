package service

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMatchTOTPStep(t *testing.T) {
	t.Parallel()

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "test", AccountName: "a@example.com"})
	require.NoError(t, err)
	secret := key.Secret()

	// A fixed instant keeps the step arithmetic deterministic.
	now := time.Date(2026, 5, 4, 12, 30, 15, 0, time.UTC)

	t.Run("current step matches", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, now)
		require.NoError(t, err)

		step, ok := matchTOTPStep(code, secret, now)
		require.True(t, ok)
		require.Equal(t, totpStep(now), step)
	})

	t.Run("previous step accepted within drift", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, now.Add(-30*time.Second))
		require.NoError(t, err)

		step, ok := matchTOTPStep(code, secret, now)
		require.True(t, ok)
		require.Equal(t, totpStep(now)-1, step)
	})

	t.Run("next step accepted within drift", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, now.Add(30*time.Second))
		require.NoError(t, err)

		step, ok := matchTOTPStep(code, secret, now)
		require.True(t, ok)
		require.Equal(t, totpStep(now)+1, step)
	})

	t.Run("two steps back rejected", func(t *testing.T) {
		code, err := totp.GenerateCode(secret, now.Add(-60*time.Second))
		require.NoError(t, err)

		_, ok := matchTOTPStep(code, secret, now)
		require.False(t, ok)
	})

	t.Run("malformed codes rejected", func(t *testing.T) {
		for _, code := range []string{"", "12345", "1234567", "abcdef"} {
			_, ok := matchTOTPStep(code, secret, now)
			require.False(t, ok, "code %q should not match", code)
		}
	})
}
