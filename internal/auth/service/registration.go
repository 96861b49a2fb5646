package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/mail"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

const (
	// VerificationCodeTTL is how long a registration code stays usable.
	VerificationCodeTTL = 5 * time.Minute

	// VerificationCodeLength is the digit count of registration codes.
	VerificationCodeLength = 6

	// MinPasswordLength is the lower bound of the password policy.
	MinPasswordLength = 8
)

var (
	// ErrEmailTaken is returned when the email already belongs to a
	// verified account. Unverified accounts do not own their address.
	ErrEmailTaken = errors.New("email_taken")

	// ErrWeakPassword is returned when a password fails the policy: at
	// least MinPasswordLength characters with a letter and a digit.
	ErrWeakPassword = errors.New("weak_password")
)

// RegistrationService creates accounts and walks them through email
// verification. An account cannot log in until its address is verified.
type RegistrationService struct {
	Store  store.Store
	Mailer mail.Mailer
}

// Register creates an unverified account and emails it a verification code.
//
// A verified account owns its email address for good. An unverified one is
// replaced wholesale, so an abandoned or mistyped signup cannot squat the
// address.
//
// Returns ErrEmailTaken, ErrWeakPassword, or ErrDeliveryFailure when the
// code mail could not be sent (the account survives for a retry).
func (s *RegistrationService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()
	email = normalizeEmail(email)

	// 1. Policy checks first; nothing persists for a bad request.
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}

	// 2. Handle the existing-account cases.
	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil && existing.VerifiedAt != nil:
		return domain.User{}, ErrEmailTaken
	case err == nil:
		if err := s.Store.Users().DeleteUser(ctx, existing.ID); err != nil {
			l.Error("failed to replace unverified account",
				slog.String("user_id", existing.ID),
				slog.Any("error", err))
			return domain.User{}, err
		}
	case !errors.Is(err, store.ErrNotFound):
		l.Error("failed to look up email", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Create the account. Everyone starts as a member; manager accounts
	// are provisioned by the bootstrap seed.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race against a concurrent signup for the same address.
			return domain.User{}, ErrEmailTaken
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Email the verification code.
	if err := s.sendVerificationCode(ctx, user, now); err != nil {
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// VerifyEmail redeems a registration code and marks the account verified.
// Verifying an already verified account is a no-op.
func (s *RegistrationService) VerifyEmail(ctx context.Context, email, code string) error {
	l := slogx.FromContext(ctx)

	// 1. Resolve the account. Unknown addresses read the same as a wrong
	// code so this endpoint cannot confirm which emails exist.
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if user.VerifiedAt != nil {
		return nil
	}

	// 2. Check the pending code. Expired codes read as missing.
	pending, err := s.Store.OTPCodes().GetOTPCode(ctx, user.ID, domain.OTPPurposeRegistration)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(pending.CodeFingerprint), []byte(cryptox.FingerprintToken(code))) != 1 {
		return ErrInvalidCode
	}

	// 3. Consume the code and flip the account in one transaction. The
	// delete is the single-use gate.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OTPCodes().DeleteOTPCode(ctx, pending.ID); err != nil {
			return err
		}
		return tx.Users().MarkVerified(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		l.Error("failed to verify email",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return err
	}

	l.Info("email verified", slog.String("user_id", user.ID))
	return nil
}

// ResendVerificationCode replaces the pending registration code and emails a
// fresh one. It reports success for unknown or already verified addresses so
// it cannot be used to probe which emails have accounts.
func (s *RegistrationService) ResendVerificationCode(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("verification resend for unknown email")
			return nil
		}
		return err
	}
	if user.VerifiedAt != nil {
		return nil
	}

	return s.sendVerificationCode(ctx, user, now)
}

// sendVerificationCode issues a registration code for the user, replacing
// any previous one, and emails it. Only the fingerprint is stored.
func (s *RegistrationService) sendVerificationCode(ctx context.Context, user domain.User, now time.Time) error {
	l := slogx.FromContext(ctx)

	code, err := cryptox.GenerateNumericCode(VerificationCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	pending := domain.OTPCode{
		ID:              idx.New().String(),
		UserID:          user.ID,
		Purpose:         domain.OTPPurposeRegistration,
		CodeFingerprint: cryptox.FingerprintToken(code),
		CreatedAt:       now,
		ExpiresAt:       now.Add(VerificationCodeTTL),
	}
	if err := s.Store.OTPCodes().ReplaceOTPCode(ctx, pending); err != nil {
		l.Error("failed to store verification code",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return err
	}

	subject := "Verify your email"
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(VerificationCodeTTL.Minutes()))
	if err := s.Mailer.Send(ctx, user.Email, subject, body); err != nil {
		l.Error("failed to send verification code",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return ErrDeliveryFailure
	}

	l.Info("verification code sent", slog.String("user_id", user.ID))
	return nil
}

// normalizeEmail lowercases and trims an address. Emails are stored and
// compared in this form everywhere.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword enforces the password policy: minimum length plus at
// least one letter and one digit.
func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
