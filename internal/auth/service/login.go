package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/mail"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/jwtx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

const (
	// MaxChallengeAttempts is the failed-code budget of one login challenge.
	// The attempt that reaches the cap also removes the challenge.
	MaxChallengeAttempts = 5

	// ChallengeTTL is how long a pending login challenge stays usable.
	ChallengeTTL = 10 * time.Minute

	// EmailCodeTTL is how long an emailed login code stays usable. Shorter
	// than the challenge so a code never outlives its challenge by much.
	EmailCodeTTL = 5 * time.Minute

	// EmailCodeLength is the digit count of emailed login codes.
	EmailCodeLength = 6

	// MethodBackup selects a single-use backup code as the second factor.
	// The other accepted methods are the channel names themselves.
	MethodBackup = "backup"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	// Unknown accounts and wrong passwords are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrAccountInactive is returned when the account has been deactivated.
	ErrAccountInactive = errors.New("account_inactive")

	// ErrAccountUnverified is returned when the email address has not been
	// verified yet.
	ErrAccountUnverified = errors.New("account_unverified")

	// ErrChallengeExpiredOrInvalid is returned when a challenge token does
	// not reference a pending login challenge. Expired and unknown tokens
	// read the same so the token cannot be used to probe state.
	ErrChallengeExpiredOrInvalid = errors.New("challenge_expired_or_invalid")

	// ErrInvalidCode is returned when a submitted code does not verify.
	ErrInvalidCode = errors.New("invalid_code")

	// ErrTooManyAttempts is returned when a challenge has burned through its
	// attempt budget. The challenge is removed at the same time.
	ErrTooManyAttempts = errors.New("too_many_attempts")

	// ErrDeliveryFailure is returned when a code email could not be handed
	// to the mail provider. The pending state survives so the caller can
	// simply retry.
	ErrDeliveryFailure = errors.New("delivery_failure")
)

// SecondFactorRequiredError is an alias to the SDK's SecondFactorRequiredError
// so callers can match on either package.
type SecondFactorRequiredError = authclient.SecondFactorRequiredError

// LoginService turns verified credentials into signed session tokens. Logins
// on accounts with two-factor enabled go through a short-lived challenge
// instead of returning a token directly.
type LoginService struct {
	Store  store.Store
	Signer jwtx.Signer
	Mailer mail.Mailer

	// Issuer is stamped into the iss claim of every session token.
	Issuer string

	// AccessTTL is the lifetime of issued session tokens.
	AccessTTL time.Duration
}

// dummyHash is verified against on the unknown-email path so both login
// failure cases cost one argon2 pass.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
	if err != nil {
		return ""
	}
	return h
})

// Login verifies an email/password pair and either issues a session token or
// opens a second factor challenge when two-factor is enabled on the account.
//
// channel picks the delivery for the second factor: "totp" (the default) or
// "email". The email channel does not send anything until RequestEmailCode
// is called against the returned challenge.
//
// Returns:
//   - ErrInvalidCredentials when the pair does not match an account
//   - ErrAccountInactive / ErrAccountUnverified after the password checks out
//   - *SecondFactorRequiredError carrying the challenge token
func (s *LoginService) Login(ctx context.Context, email, password, channel string) (domain.Token, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Resolve the account. Unknown emails still pay for one hash
	// verification so response timing does not reveal which case hit.
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = cryptox.VerifyPassword(password, dummyHash())
			return domain.Token{}, ErrInvalidCredentials
		}
		l.Error("failed to load user for login", slog.Any("error", err))
		return domain.Token{}, err
	}

	// 2. Check the password.
	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		l.Error("stored password hash is unreadable",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return domain.Token{}, ErrInvalidCredentials
	}
	if !ok {
		return domain.Token{}, ErrInvalidCredentials
	}

	// 3. Account state gates. These only surface once the password is
	// right, so they cannot be used to map account states.
	if !user.Active {
		return domain.Token{}, ErrAccountInactive
	}
	if user.VerifiedAt == nil {
		return domain.Token{}, ErrAccountUnverified
	}

	// 4. No second factor on the account: the password alone completes the
	// login.
	if user.TOTPEnabledAt == nil {
		tok, err := s.issueSession(ctx, user, []string{jwtx.AMRPassword}, now)
		if err != nil {
			return domain.Token{}, err
		}
		l.Info("login completed", slog.String("user_id", user.ID))
		return tok, nil
	}

	// 5. Open a challenge. Any previous pending challenge for this user is
	// replaced, so the newest login attempt always owns the slot.
	if channel == "" {
		channel = domain.ChannelTOTP
	}
	ch := domain.Challenge{
		ID:        idx.New().String(),
		UserID:    user.ID,
		Channel:   channel,
		CreatedAt: now,
		ExpiresAt: now.Add(ChallengeTTL),
	}
	if err := s.Store.Challenges().ReplaceChallenge(ctx, ch); err != nil {
		l.Error("failed to create login challenge",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return domain.Token{}, err
	}

	l.Info("second factor required",
		slog.String("user_id", user.ID),
		slog.String("channel", ch.Channel))
	return domain.Token{}, &SecondFactorRequiredError{
		ChallengeToken: ch.ID,
		Channel:        ch.Channel,
		ExpiresAt:      ch.ExpiresAt,
	}
}

// CompleteSecondFactor verifies a submitted code against a pending challenge
// and finishes the login it belongs to.
//
// method selects what kind of code was submitted: empty uses the challenge
// channel, "totp" and "email" force a specific check, and "backup" spends a
// single-use backup code. Every failed check is counted against the
// challenge; the attempt that exhausts the budget removes it.
func (s *LoginService) CompleteSecondFactor(ctx context.Context, challengeToken, method, code string) (domain.Token, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Load the pending challenge. GetChallenge already treats expired
	// rows as missing.
	ch, err := s.Store.Challenges().GetChallenge(ctx, challengeToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrChallengeExpiredOrInvalid
		}
		l.Error("failed to load login challenge", slog.Any("error", err))
		return domain.Token{}, err
	}

	// 2. Enforce the attempt budget before looking at the code. A challenge
	// sitting at the cap is force-expired here.
	if ch.Attempts >= MaxChallengeAttempts {
		if err := s.Store.Challenges().DeleteChallenge(ctx, ch.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			l.Error("failed to remove exhausted challenge", slog.Any("error", err))
		}
		l.Warn("challenge attempt budget exhausted", slog.String("user_id", ch.UserID))
		return domain.Token{}, ErrTooManyAttempts
	}

	// 3. Load the account behind the challenge.
	user, err := s.Store.Users().GetUserByID(ctx, ch.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrChallengeExpiredOrInvalid
		}
		l.Error("failed to load user for challenge",
			slog.String("user_id", ch.UserID),
			slog.Any("error", err))
		return domain.Token{}, err
	}
	if !user.Active {
		return domain.Token{}, ErrAccountInactive
	}

	// 4. Check the code without consuming anything yet.
	factor, verr := s.checkFactor(ctx, user, ch, method, code, now)
	if verr != nil {
		if !errors.Is(verr, ErrInvalidCode) {
			l.Error("second factor check failed", slog.Any("error", verr))
			return domain.Token{}, verr
		}

		// 5. Count the failure. The increment sticks even though the
		// request fails, and the failure that reaches the cap removes the
		// challenge entirely.
		updated, ierr := s.Store.Challenges().IncrementChallengeAttempts(ctx, ch.ID)
		if ierr != nil && !errors.Is(ierr, store.ErrNotFound) {
			l.Error("failed to count challenge attempt", slog.Any("error", ierr))
		}
		if ierr == nil && updated.Attempts >= MaxChallengeAttempts {
			if derr := s.Store.Challenges().DeleteChallenge(ctx, ch.ID); derr != nil && !errors.Is(derr, store.ErrNotFound) {
				l.Error("failed to remove exhausted challenge", slog.Any("error", derr))
			}
			l.Warn("challenge attempt budget exhausted", slog.String("user_id", ch.UserID))
			return domain.Token{}, ErrTooManyAttempts
		}
		return domain.Token{}, verr
	}

	// 6. Sign the session token before committing anything.
	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.Name, user.Role,
		[]string{jwtx.AMRPassword, factor.amr}, s.AccessTTL, s.Issuer, now)
	signed, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Token{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	// 7. Commit. Removing the challenge is the single-use gate: of two
	// concurrent verifications only one can delete the row, the other loses
	// the race and reports the challenge gone.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteChallenge(ctx, ch.ID); err != nil {
			return err
		}
		if err := factor.consume(ctx, tx); err != nil {
			return err
		}
		return tx.Users().UpdateLastLogin(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Token{}, ErrChallengeExpiredOrInvalid
		}
		l.Error("failed to commit second factor login",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return domain.Token{}, err
	}

	l.Info("second factor login completed",
		slog.String("user_id", user.ID),
		slog.String("method", factor.amr))
	return domain.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.AccessTTL.Seconds()),
	}, nil
}

// RequestEmailCode generates a fresh login code and emails it to the account
// behind the challenge. The challenge switches to the email channel, so a
// user who normally uses an authenticator can fall back to mail. Calling it
// again replaces the previous code.
func (s *LoginService) RequestEmailCode(ctx context.Context, challengeToken string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Load the challenge and its account.
	ch, err := s.Store.Challenges().GetChallenge(ctx, challengeToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChallengeExpiredOrInvalid
		}
		l.Error("failed to load login challenge", slog.Any("error", err))
		return err
	}
	user, err := s.Store.Users().GetUserByID(ctx, ch.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChallengeExpiredOrInvalid
		}
		return err
	}

	// 2. Generate and persist the code before any send attempt. Only the
	// fingerprint is stored; the code itself exists in the mail body alone.
	code, err := cryptox.GenerateNumericCode(EmailCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate login code: %w", err)
	}
	if err := s.Store.Challenges().SetEmailCode(ctx, ch.ID, cryptox.FingerprintToken(code), now.Add(EmailCodeTTL)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChallengeExpiredOrInvalid
		}
		l.Error("failed to store login code", slog.Any("error", err))
		return err
	}

	// 3. Send. A failed send leaves the challenge and code in place, so the
	// caller can retry without logging in again.
	subject := "Your login code"
	body := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(EmailCodeTTL.Minutes()))
	if err := s.Mailer.Send(ctx, user.Email, subject, body); err != nil {
		l.Error("failed to send login code",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return ErrDeliveryFailure
	}

	l.Info("login code sent", slog.String("user_id", user.ID))
	return nil
}

// secondFactor is a verified second factor waiting to be consumed inside the
// commit transaction.
type secondFactor struct {
	amr     string
	consume func(ctx context.Context, tx store.Tx) error
}

// checkFactor verifies the submitted code against the chosen method. It
// never mutates state; consumption happens via the returned closure inside
// the commit transaction. Verification failures are ErrInvalidCode, anything
// else is an infrastructure error.
func (s *LoginService) checkFactor(ctx context.Context, user domain.User, ch domain.Challenge, method, code string, now time.Time) (secondFactor, error) {
	m := method
	if m == "" {
		m = ch.Channel
	}

	switch m {
	case domain.ChannelTOTP:
		if user.TOTPSecret == nil || *user.TOTPSecret == "" {
			return secondFactor{}, ErrInvalidCode
		}
		step, ok := matchTOTPStep(code, *user.TOTPSecret, now)
		if !ok || step <= user.TOTPLastStep {
			return secondFactor{}, ErrInvalidCode
		}
		return secondFactor{
			amr: jwtx.AMRTOTP,
			consume: func(ctx context.Context, tx store.Tx) error {
				return tx.Users().ConsumeTOTPStep(ctx, user.ID, step)
			},
		}, nil

	case domain.ChannelEmail:
		if ch.CodeFingerprint == nil || ch.CodeExpiresAt == nil || now.After(*ch.CodeExpiresAt) {
			return secondFactor{}, ErrInvalidCode
		}
		if subtle.ConstantTimeCompare([]byte(*ch.CodeFingerprint), []byte(cryptox.FingerprintToken(code))) != 1 {
			return secondFactor{}, ErrInvalidCode
		}
		// Deleting the challenge consumes the emailed code with it.
		return secondFactor{
			amr:     jwtx.AMREmailOTP,
			consume: func(context.Context, store.Tx) error { return nil },
		}, nil

	case MethodBackup:
		hash := cryptox.FingerprintToken(code)
		ok, err := s.Store.BackupCodes().VerifyBackupCode(ctx, user.ID, hash)
		if err != nil {
			return secondFactor{}, fmt.Errorf("failed to check backup code: %w", err)
		}
		if !ok {
			return secondFactor{}, ErrInvalidCode
		}
		return secondFactor{
			amr: jwtx.AMRBackup,
			consume: func(ctx context.Context, tx store.Tx) error {
				return tx.BackupCodes().DeleteBackupCode(ctx, user.ID, hash)
			},
		}, nil

	default:
		return secondFactor{}, ErrInvalidCode
	}
}

// issueSession signs a session token and stamps the login time. The token is
// what the caller keeps; the timestamp is best effort.
func (s *LoginService) issueSession(ctx context.Context, user domain.User, amr []string, now time.Time) (domain.Token, error) {
	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.Name, user.Role, amr, s.AccessTTL, s.Issuer, now)
	signed, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Token{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID); err != nil {
		slogx.FromContext(ctx).Warn("failed to stamp last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	}

	return domain.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.AccessTTL.Seconds()),
	}, nil
}
