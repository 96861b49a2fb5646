package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/jwtx"
)

func TestLoginIssuesSessionToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "alice@example.com", "correct horse 1")

	tok, err := svc.Login(ctx, "alice@example.com", "correct horse 1", "")
	require.NoError(t, err)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, int64(60), tok.ExpiresIn)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "taskhub-test")
	require.NoError(t, err)
	claims, err := verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, domain.RoleMember, claims.Role)
	require.Equal(t, []string{jwtx.AMRPassword}, claims.AMR)

	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin, "login should stamp last_login")
}

func TestLoginNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	seedUser(t, st, "casey@example.com", "password123")

	_, err := svc.Login(ctx, "  Casey@Example.COM ", "password123", "")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	seedUser(t, st, "bob@example.com", "password123")

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "not the password 1", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginAccountStateGates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)

	inactive := domain.User{
		ID: idx.New().String(), Email: "inactive@example.com", Name: "Inactive",
		PasswordHash: hash, Role: domain.RoleMember, VerifiedAt: &now, Active: false,
	}
	require.NoError(t, st.Users().CreateUser(ctx, inactive))

	unverified := domain.User{
		ID: idx.New().String(), Email: "unverified@example.com", Name: "Unverified",
		PasswordHash: hash, Role: domain.RoleMember, Active: true,
	}
	require.NoError(t, st.Users().CreateUser(ctx, unverified))

	t.Run("inactive account", func(t *testing.T) {
		_, err := svc.Login(ctx, "inactive@example.com", "password123", "")
		require.ErrorIs(t, err, ErrAccountInactive)
	})

	t.Run("unverified account", func(t *testing.T) {
		_, err := svc.Login(ctx, "unverified@example.com", "password123", "")
		require.ErrorIs(t, err, ErrAccountUnverified)
	})

	t.Run("wrong password wins over account state", func(t *testing.T) {
		_, err := svc.Login(ctx, "inactive@example.com", "wrong password 1", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginWithTwoFactorOpensChallenge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "tina@example.com", "password123")
	secret, _ := enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "tina@example.com", "password123", "")
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)
	require.Equal(t, domain.ChannelTOTP, chErr.Channel)
	require.NotEmpty(t, chErr.ChallengeToken)
	require.WithinDuration(t, time.Now().Add(ChallengeTTL), chErr.ExpiresAt, 5*time.Second)

	// The next time step's code clears the replay guard left by activation.
	code, err := totp.GenerateCode(secret, time.Now().Add(30*time.Second))
	require.NoError(t, err)

	tok, err := svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", code)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "taskhub-test")
	require.NoError(t, err)
	claims, err := verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{jwtx.AMRPassword, jwtx.AMRTOTP}, claims.AMR)

	t.Run("challenge is single use", func(t *testing.T) {
		_, err := svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", code)
		require.ErrorIs(t, err, ErrChallengeExpiredOrInvalid)
	})

	t.Run("consumed code cannot replay on a fresh challenge", func(t *testing.T) {
		_, err := svc.Login(ctx, "tina@example.com", "password123", "")
		var again *SecondFactorRequiredError
		require.ErrorAs(t, err, &again)

		_, err = svc.CompleteSecondFactor(ctx, again.ChallengeToken, "", code)
		require.ErrorIs(t, err, ErrInvalidCode)
	})
}

func TestRepeatedLoginReplacesChallenge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "renee@example.com", "password123")
	secret, _ := enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "renee@example.com", "password123", "")
	var first *SecondFactorRequiredError
	require.ErrorAs(t, err, &first)

	_, err = svc.Login(ctx, "renee@example.com", "password123", "")
	var second *SecondFactorRequiredError
	require.ErrorAs(t, err, &second)
	require.NotEqual(t, first.ChallengeToken, second.ChallengeToken)

	code, err := totp.GenerateCode(secret, time.Now().Add(30*time.Second))
	require.NoError(t, err)

	// Only the newest challenge is live.
	_, err = svc.CompleteSecondFactor(ctx, first.ChallengeToken, "", code)
	require.ErrorIs(t, err, ErrChallengeExpiredOrInvalid)

	_, err = svc.CompleteSecondFactor(ctx, second.ChallengeToken, "", code)
	require.NoError(t, err)
}

func TestChallengeAttemptBudget(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "mallory@example.com", "password123")
	enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "mallory@example.com", "password123", "")
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)

	// A seven digit code can never validate, so every attempt fails.
	for i := 0; i < MaxChallengeAttempts-1; i++ {
		_, err := svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", "1234567")
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	// The attempt that reaches the cap reports the budget, not the code.
	_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", "1234567")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// The challenge died with it.
	_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", "1234567")
	require.ErrorIs(t, err, ErrChallengeExpiredOrInvalid)
}

func TestExpiredChallengeReadsAsMissing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})
	now := time.Now().UTC()

	user := seedUser(t, st, "pat@example.com", "password123")

	ch := domain.Challenge{
		ID:        idx.New().String(),
		UserID:    user.ID,
		Channel:   domain.ChannelTOTP,
		CreatedAt: now.Add(-20 * time.Minute),
		ExpiresAt: now.Add(-10 * time.Minute),
	}
	require.NoError(t, st.Challenges().ReplaceChallenge(ctx, ch))

	_, err := svc.CompleteSecondFactor(ctx, ch.ID, "", "123456")
	require.ErrorIs(t, err, ErrChallengeExpiredOrInvalid)

	require.ErrorIs(t, svc.RequestEmailCode(ctx, ch.ID), ErrChallengeExpiredOrInvalid)
}

func TestEmailChannelLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newLoginService(t, st, mailer)

	user := seedUser(t, st, "erin@example.com", "password123")
	enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "erin@example.com", "password123", domain.ChannelEmail)
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)
	require.Equal(t, domain.ChannelEmail, chErr.Channel)
	require.Zero(t, mailer.count(), "login alone must not send mail")

	require.NoError(t, svc.RequestEmailCode(ctx, chErr.ChallengeToken))
	require.Equal(t, user.Email, mailer.last(t).To)
	code := extractCode(t, mailer.last(t).Body)

	tok, err := svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", code)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "taskhub-test")
	require.NoError(t, err)
	claims, err := verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{jwtx.AMRPassword, jwtx.AMREmailOTP}, claims.AMR)
}

func TestRequestEmailCodeReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newLoginService(t, st, mailer)

	user := seedUser(t, st, "dana@example.com", "password123")
	enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "dana@example.com", "password123", domain.ChannelEmail)
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)

	require.NoError(t, svc.RequestEmailCode(ctx, chErr.ChallengeToken))
	oldCode := extractCode(t, mailer.last(t).Body)

	require.NoError(t, svc.RequestEmailCode(ctx, chErr.ChallengeToken))
	newCode := extractCode(t, mailer.last(t).Body)

	if oldCode != newCode {
		_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", oldCode)
		require.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", newCode)
	require.NoError(t, err)
}

func TestRequestEmailCodeDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newLoginService(t, st, mailer)

	user := seedUser(t, st, "finn@example.com", "password123")
	enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "finn@example.com", "password123", domain.ChannelEmail)
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)

	mailer.setFail(true)
	require.ErrorIs(t, svc.RequestEmailCode(ctx, chErr.ChallengeToken), ErrDeliveryFailure)

	// The challenge survived the failed send; a retry just works.
	mailer.setFail(false)
	require.NoError(t, svc.RequestEmailCode(ctx, chErr.ChallengeToken))

	code := extractCode(t, mailer.last(t).Body)
	_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", code)
	require.NoError(t, err)
}

func TestExpiredEmailCodeRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "gale@example.com", "password123")
	enrollAndActivate(t, st, user.ID)

	_, err := svc.Login(ctx, "gale@example.com", "password123", domain.ChannelEmail)
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)

	// Plant a code that expired a minute ago.
	require.NoError(t, st.Challenges().SetEmailCode(ctx, chErr.ChallengeToken,
		cryptox.FingerprintToken("111111"), time.Now().UTC().Add(-time.Minute)))

	_, err = svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, "", "111111")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestBackupCodeCompletesLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newLoginService(t, st, &captureMailer{})

	user := seedUser(t, st, "hugo@example.com", "password123")
	_, codes := enrollAndActivate(t, st, user.ID)
	require.Len(t, codes, BackupCodeCount)

	_, err := svc.Login(ctx, "hugo@example.com", "password123", "")
	var chErr *SecondFactorRequiredError
	require.ErrorAs(t, err, &chErr)

	tok, err := svc.CompleteSecondFactor(ctx, chErr.ChallengeToken, MethodBackup, codes[0])
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, "taskhub-test")
	require.NoError(t, err)
	claims, err := verifier.Verify(tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, []string{jwtx.AMRPassword, jwtx.AMRBackup}, claims.AMR)

	n, err := st.BackupCodes().CountUserBackupCodes(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, BackupCodeCount-1, n)

	t.Run("spent code is rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "hugo@example.com", "password123", "")
		var again *SecondFactorRequiredError
		require.ErrorAs(t, err, &again)

		_, err = svc.CompleteSecondFactor(ctx, again.ChallengeToken, MethodBackup, codes[0])
		require.ErrorIs(t, err, ErrInvalidCode)
	})
}
