package sqlite

import (
	"context"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type otpCodesRepo struct {
	db dbtx
}

func (r *otpCodesRepo) ReplaceOTPCode(ctx context.Context, c domain.OTPCode) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE user_id = ? AND purpose = ?`,
		c.UserID, c.Purpose); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO otp_codes (id, user_id, purpose, code_fingerprint, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Purpose, c.CodeFingerprint, c.ExpiresAt, c.CreatedAt,
	)
	return err
}

func (r *otpCodesRepo) GetOTPCode(ctx context.Context, userID, purpose string) (domain.OTPCode, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, purpose, code_fingerprint, expires_at, created_at
		FROM otp_codes WHERE user_id = ? AND purpose = ?`,
		userID, purpose)

	var c domain.OTPCode
	if err := row.Scan(&c.ID, &c.UserID, &c.Purpose, &c.CodeFingerprint,
		&c.ExpiresAt, &c.CreatedAt); err != nil {
		return domain.OTPCode{}, mapNotFound(err)
	}
	// An expired row reads the same as a missing one.
	if !c.ExpiresAt.After(time.Now().UTC()) {
		return domain.OTPCode{}, store.ErrNotFound
	}
	return c, nil
}

func (r *otpCodesRepo) DeleteOTPCode(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *otpCodesRepo) DeleteExpiredOTPCodes(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
