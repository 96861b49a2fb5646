package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/pkg/authclient"
)

// TestRegistrationFlow walks the full signup path: register, receive the
// verification code, verify, log in, and read the profile back.
func TestRegistrationFlow(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	// Register a fresh account
	regResp, err := client.Register(ctx, "casey@example.com", "Casey", "Sup3rSecret")
	require.NoError(t, err, "Registration should succeed")
	require.NotEmpty(t, regResp.UserID)
	require.Equal(t, "casey@example.com", regResp.Email)
	require.Equal(t, "Casey", regResp.Name)

	t.Logf("Registered user %s", regResp.UserID)

	// The account cannot log in until the address is verified
	_, err = client.Login(ctx, "casey@example.com", "Sup3rSecret")
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeAccountUnverified,
		"Unverified account should not log in")

	t.Logf("Unverified login correctly rejected")

	// Verify with the code from the mail
	code := readMailCode(t, env, "casey@example.com", "Verify your email")
	err = client.VerifyEmail(ctx, "casey@example.com", code)
	require.NoError(t, err, "Verification should succeed")

	t.Logf("Email verified with code from mail")

	// Now the login works and the profile reflects the registration
	session := loginUser(t, client, "casey@example.com", "Sup3rSecret")

	profile, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, regResp.UserID, profile.UserID)
	require.Equal(t, "casey@example.com", profile.Email)
	require.Equal(t, "Casey", profile.Name)
	require.Equal(t, "member", profile.Role, "Self-registered accounts start as members")
	require.NotNil(t, profile.VerifiedAt, "Profile should show the verification time")
	require.False(t, profile.TwoFactorEnabled, "Two-factor should be off by default")

	t.Logf("Profile confirms registration: %s (%s)", profile.Name, profile.Role)
}

// TestRegistrationRejectsWeakPassword verifies the password policy is enforced
// at signup.
func TestRegistrationRejectsWeakPassword(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	// Too short
	_, err := client.Register(ctx, "short@example.com", "Short", "ab1")
	assertAPIError(t, err, http.StatusBadRequest, authclient.ErrorCodeWeakPassword,
		"Short password should be rejected")

	// No digit
	_, err = client.Register(ctx, "nodigit@example.com", "NoDigit", "justletters")
	assertAPIError(t, err, http.StatusBadRequest, authclient.ErrorCodeWeakPassword,
		"Password without a digit should be rejected")

	// No letter
	_, err = client.Register(ctx, "noletter@example.com", "NoLetter", "1234567890")
	assertAPIError(t, err, http.StatusBadRequest, authclient.ErrorCodeWeakPassword,
		"Password without a letter should be rejected")

	t.Logf("Weak passwords correctly rejected")
}

// TestRegistrationDuplicateEmail verifies that a verified account owns its
// address while an unverified signup can be replaced.
func TestRegistrationDuplicateEmail(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	// An unverified signup does not own the address; registering again
	// replaces it and issues a fresh account.
	first, err := client.Register(ctx, "dana@example.com", "Dana", "Passw0rd!")
	require.NoError(t, err)

	second, err := client.Register(ctx, "dana@example.com", "Dana Again", "0therPassw0rd")
	require.NoError(t, err, "Re-registering an unverified address should succeed")
	require.NotEqual(t, first.UserID, second.UserID, "Replacement should be a new account")

	t.Logf("Unverified signup replaced: %s -> %s", first.UserID, second.UserID)

	// Verify the replacement; the first signup's code must be dead.
	code := readMailCode(t, env, "dana@example.com", "Verify your email")
	err = client.VerifyEmail(ctx, "dana@example.com", code)
	require.NoError(t, err)

	// Once verified, the address is taken for good
	_, err = client.Register(ctx, "dana@example.com", "Dana Third", "YetAn0ther!")
	assertAPIError(t, err, http.StatusConflict, authclient.ErrorCodeEmailTaken,
		"Verified address should not be re-registerable")

	// The replacement account logs in with its own password
	loginUser(t, client, "dana@example.com", "0therPassw0rd")

	t.Logf("Verified address correctly protected")
}

// TestRegistrationWrongCode verifies that bad verification codes are rejected
// and that the right code still works afterwards.
func TestRegistrationWrongCode(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	_, err := client.Register(ctx, "erin@example.com", "Erin", "Passw0rd!")
	require.NoError(t, err)

	// A seven digit code can never be issued, so this always misses
	err = client.VerifyEmail(ctx, "erin@example.com", "1234567")
	assertAPIError(t, err, http.StatusUnauthorized, authclient.ErrorCodeInvalidCode,
		"Wrong code should be rejected")

	// Unknown address reads the same as a wrong code
	err = client.VerifyEmail(ctx, "nobody@example.com", "1234567")
	assertAPIError(t, err, http.StatusUnauthorized, authclient.ErrorCodeInvalidCode,
		"Unknown address should read as a wrong code")

	// The real code still works after failed attempts
	code := readMailCode(t, env, "erin@example.com", "Verify your email")
	err = client.VerifyEmail(ctx, "erin@example.com", code)
	require.NoError(t, err, "Real code should still work")

	t.Logf("Wrong codes rejected without burning the real one")
}

// TestRegistrationResendCode verifies that resending invalidates the previous
// code and that the endpoint never confirms whether an address is registered.
func TestRegistrationResendCode(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	_, err := client.Register(ctx, "frank@example.com", "Frank", "Passw0rd!")
	require.NoError(t, err)

	firstCode := readMailCode(t, env, "frank@example.com", "Verify your email")

	err = client.ResendCode(ctx, "frank@example.com")
	require.NoError(t, err, "Resend should succeed")

	secondCode := readMailCode(t, env, "frank@example.com", "Verify your email")
	require.NotEqual(t, firstCode, secondCode, "Resend should mint a fresh code")

	// The replaced code is dead
	err = client.VerifyEmail(ctx, "frank@example.com", firstCode)
	assertAPIError(t, err, http.StatusUnauthorized, authclient.ErrorCodeInvalidCode,
		"Replaced code should no longer verify")

	// The fresh one works
	err = client.VerifyEmail(ctx, "frank@example.com", secondCode)
	require.NoError(t, err)

	t.Logf("Resend replaced the code: %s -> %s", firstCode, secondCode)

	// Resending for an unknown or already verified address still reports
	// success, so the endpoint cannot be used to probe for accounts.
	err = client.ResendCode(ctx, "unknown@example.com")
	require.NoError(t, err, "Resend for unknown address should not error")

	err = client.ResendCode(ctx, "frank@example.com")
	require.NoError(t, err, "Resend for verified address should not error")

	t.Logf("Resend endpoint does not leak account existence")
}
