package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/mail"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

const (
	// ResetCodeTTL is how long a password reset code stays usable. Longer
	// than registration codes because the user may need to dig through
	// their inbox.
	ResetCodeTTL = 10 * time.Minute

	// ResetCodeLength is the digit count of reset codes.
	ResetCodeLength = 6
)

// ErrPasswordReuse is returned when the new password is the same as the
// current one.
var ErrPasswordReuse = errors.New("password_reuse")

// PasswordService changes and resets account passwords. Resets ride on
// emailed one-time codes; changes require the current password.
type PasswordService struct {
	Store  store.Store
	Mailer mail.Mailer
}

// ChangePassword swaps the password of an authenticated user. The current
// password must verify, and the new one must pass policy and differ from it.
func (s *PasswordService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	l := slogx.FromContext(ctx)

	// 1. Load the account.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	// 2. Prove possession of the current password.
	ok, err := cryptox.VerifyPassword(current, user.PasswordHash)
	if err != nil {
		l.Error("stored password hash is unreadable",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return ErrInvalidCredentials
	}
	if !ok {
		return ErrInvalidCredentials
	}

	// 3. Policy plus no-reuse.
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if same, err := cryptox.VerifyPassword(newPassword, user.PasswordHash); err == nil && same {
		return ErrPasswordReuse
	}

	// 4. Store the new hash.
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		l.Error("failed to update password",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return err
	}

	l.Info("password changed", slog.String("user_id", user.ID))
	return nil
}

// RequestPasswordReset emails a reset code to the account behind the
// address. Unknown, unverified and deactivated addresses report success
// without sending anything, so the endpoint cannot be used to probe which
// emails have accounts.
func (s *PasswordService) RequestPasswordReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset for unknown email")
			return nil
		}
		return err
	}
	if user.VerifiedAt == nil || !user.Active {
		return nil
	}

	code, err := cryptox.GenerateNumericCode(ResetCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	pending := domain.OTPCode{
		ID:              idx.New().String(),
		UserID:          user.ID,
		Purpose:         domain.OTPPurposePasswordReset,
		CodeFingerprint: cryptox.FingerprintToken(code),
		CreatedAt:       now,
		ExpiresAt:       now.Add(ResetCodeTTL),
	}
	if err := s.Store.OTPCodes().ReplaceOTPCode(ctx, pending); err != nil {
		l.Error("failed to store reset code",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return err
	}

	subject := "Reset your password"
	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		code, int(ResetCodeTTL.Minutes()))
	if err := s.Mailer.Send(ctx, user.Email, subject, body); err != nil {
		l.Error("failed to send reset code",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return ErrDeliveryFailure
	}

	l.Info("password reset code sent", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword redeems a reset code and replaces the password. The policy
// check runs before the code is consumed, so a rejected password leaves the
// code usable for another try.
func (s *PasswordService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	l := slogx.FromContext(ctx)

	// 1. Policy first.
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	// 2. Resolve the account. Unknown addresses read as a wrong code.
	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	// 3. Check the pending code.
	pending, err := s.Store.OTPCodes().GetOTPCode(ctx, user.ID, domain.OTPPurposePasswordReset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(pending.CodeFingerprint), []byte(cryptox.FingerprintToken(code))) != 1 {
		return ErrInvalidCode
	}

	// 4. Consume the code and swap the hash atomically.
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.OTPCodes().DeleteOTPCode(ctx, pending.ID); err != nil {
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, user.ID, hash)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		l.Error("failed to reset password",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return err
	}

	l.Info("password reset", slog.String("user_id", user.ID))
	return nil
}
