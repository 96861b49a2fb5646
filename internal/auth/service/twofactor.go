package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// BackupCodeCount is how many single-use backup codes an activation mints.
const BackupCodeCount = 10

var (
	// ErrTwoFactorAlreadyEnabled is returned when enrolling or activating
	// an account that already has two-factor turned on.
	ErrTwoFactorAlreadyEnabled = errors.New("twofactor_already_enabled")

	// ErrTwoFactorNotEnrolled is returned when activating without a prior
	// enrollment.
	ErrTwoFactorNotEnrolled = errors.New("twofactor_not_enrolled")

	// ErrTwoFactorNotEnabled is returned when disabling or regenerating
	// backup codes on an account without two-factor.
	ErrTwoFactorNotEnabled = errors.New("twofactor_not_enabled")
)

// TwoFactorService manages TOTP enrollment on authenticated accounts.
// Enrollment stores a secret, activation proves the authenticator works and
// turns the factor on, and disabling requires one last proof.
type TwoFactorService struct {
	Store store.Store

	// Issuer is shown in authenticator apps next to the account.
	Issuer string
}

// Enroll generates a fresh TOTP secret for the account and returns it with
// the otpauth provisioning URI. Enrolling again before activation replaces
// the previous secret; two-factor stays off until Activate succeeds.
func (s *TwoFactorService) Enroll(ctx context.Context, userID string) (domain.TOTPEnrollment, error) {
	l := slogx.FromContext(ctx)

	// 1. The account must exist and not already have the factor on.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.TOTPEnrollment{}, err
	}
	if user.TOTPEnabledAt != nil {
		return domain.TOTPEnrollment{}, ErrTwoFactorAlreadyEnabled
	}

	// 2. Generate the secret. The parameters are the authenticator-app
	// defaults; anything else breaks real devices.
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	// 3. Store it. The secret is worthless until activation, so replacing a
	// previous enrollment attempt is harmless.
	if err := s.Store.Users().UpdateTOTPSecret(ctx, userID, key.Secret()); err != nil {
		l.Error("failed to store totp secret",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return domain.TOTPEnrollment{}, err
	}

	l.Info("totp enrolled", slog.String("user_id", userID))
	return domain.TOTPEnrollment{
		Secret:  key.Secret(),
		URI:     key.URL(),
		Issuer:  s.Issuer,
		Account: user.Email,
	}, nil
}

// Activate turns two-factor on after verifying one code from the enrolled
// authenticator, and returns the freshly minted single-use backup codes.
// They are shown exactly once; only fingerprints are stored.
func (s *TwoFactorService) Activate(ctx context.Context, userID, code string) ([]string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. The account must be enrolled but not yet active.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabledAt != nil {
		return nil, ErrTwoFactorAlreadyEnabled
	}
	if user.TOTPSecret == nil || *user.TOTPSecret == "" {
		return nil, ErrTwoFactorNotEnrolled
	}

	// 2. Prove the authenticator produces valid codes.
	step, ok := matchTOTPStep(code, *user.TOTPSecret, now)
	if !ok || step <= user.TOTPLastStep {
		return nil, ErrInvalidCode
	}

	// 3. Mint the backup codes up front so the transaction only writes.
	codes, err := mintBackupCodes()
	if err != nil {
		return nil, err
	}

	// 4. Flip the factor on, burn the activation code and store the backup
	// fingerprints in one transaction.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().ConsumeTOTPStep(ctx, userID, step); err != nil {
			return err
		}
		if err := tx.Users().EnableTOTP(ctx, userID); err != nil {
			return err
		}
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
			return err
		}
		for _, c := range codes {
			if err := tx.BackupCodes().CreateBackupCode(ctx, userID, cryptox.FingerprintToken(c)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		l.Error("failed to activate two-factor",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, err
	}

	l.Info("two-factor activated", slog.String("user_id", userID))
	return codes, nil
}

// Disable turns two-factor off and wipes the backup codes. Proof is either
// a current authenticator code (method "totp" or empty) or one of the
// remaining backup codes (method "backup").
func (s *TwoFactorService) Disable(ctx context.Context, userID, method, code string) error {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. The factor must be on for there to be anything to disable.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPEnabledAt == nil {
		return ErrTwoFactorNotEnabled
	}

	// 2. Verify the proof, then clear everything in one transaction. The
	// proof consumption doubles as the concurrency gate.
	switch method {
	case "", domain.ChannelTOTP:
		if user.TOTPSecret == nil || *user.TOTPSecret == "" {
			return ErrTwoFactorNotEnabled
		}
		step, ok := matchTOTPStep(code, *user.TOTPSecret, now)
		if !ok || step <= user.TOTPLastStep {
			return ErrInvalidCode
		}
		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().ConsumeTOTPStep(ctx, userID, step); err != nil {
				return err
			}
			return disableTwoFactor(ctx, tx, userID)
		})

	case MethodBackup:
		hash := cryptox.FingerprintToken(code)
		ok, verr := s.Store.BackupCodes().VerifyBackupCode(ctx, userID, hash)
		if verr != nil {
			return fmt.Errorf("failed to check backup code: %w", verr)
		}
		if !ok {
			return ErrInvalidCode
		}
		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.BackupCodes().DeleteBackupCode(ctx, userID, hash); err != nil {
				return err
			}
			return disableTwoFactor(ctx, tx, userID)
		})

	default:
		return ErrInvalidCode
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		l.Error("failed to disable two-factor",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return err
	}

	l.Info("two-factor disabled", slog.String("user_id", userID))
	return nil
}

// RegenerateBackupCodes replaces every backup code after re-proving the
// authenticator. Codes already handed out stop working immediately.
func (s *TwoFactorService) RegenerateBackupCodes(ctx context.Context, userID, code string) ([]string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabledAt == nil || user.TOTPSecret == nil {
		return nil, ErrTwoFactorNotEnabled
	}

	step, ok := matchTOTPStep(code, *user.TOTPSecret, now)
	if !ok || step <= user.TOTPLastStep {
		return nil, ErrInvalidCode
	}

	codes, err := mintBackupCodes()
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().ConsumeTOTPStep(ctx, userID, step); err != nil {
			return err
		}
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
			return err
		}
		for _, c := range codes {
			if err := tx.BackupCodes().CreateBackupCode(ctx, userID, cryptox.FingerprintToken(c)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		l.Error("failed to regenerate backup codes",
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, err
	}

	l.Info("backup codes regenerated", slog.String("user_id", userID))
	return codes, nil
}

// disableTwoFactor clears the TOTP state and every backup code. Runs inside
// the caller's transaction.
func disableTwoFactor(ctx context.Context, tx store.Tx, userID string) error {
	if err := tx.Users().DisableTOTP(ctx, userID); err != nil {
		return err
	}
	return tx.BackupCodes().DeleteAllBackupCodes(ctx, userID)
}

// mintBackupCodes returns BackupCodeCount fresh plaintext codes.
func mintBackupCodes() ([]string, error) {
	codes := make([]string, BackupCodeCount)
	for i := range codes {
		c, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		codes[i] = c
	}
	return codes, nil
}
