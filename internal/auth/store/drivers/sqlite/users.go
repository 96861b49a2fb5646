package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, name, password_hash, role, totp_secret,
	totp_enabled_at, totp_last_step, verified_at, active, last_login,
	created_at, updated_at`

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u             domain.User
		totpSecret    sql.NullString
		totpEnabledAt sql.NullTime
		verifiedAt    sql.NullTime
		lastLogin     sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&totpSecret, &totpEnabledAt, &u.TOTPLastStep, &verifiedAt,
		&u.Active, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return domain.User{}, err
	}
	u.TOTPSecret = mapNullStringPtr(totpSecret)
	u.TOTPEnabledAt = mapNullTimePtr(totpEnabledAt)
	u.VerifiedAt = mapNullTimePtr(verifiedAt)
	u.LastLogin = mapNullTimePtr(lastLogin)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, name, password_hash, role, totp_secret,
			totp_enabled_at, totp_last_step, verified_at, active, last_login,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role,
		mapOptionalString(u.TOTPSecret), mapOptionalTime(u.TOTPEnabledAt),
		u.TOTPLastStep, mapOptionalTime(u.VerifiedAt), u.Active,
		mapOptionalTime(u.LastLogin), now, now,
	)
	return mapAlreadyExists(err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET verified_at = ?, updated_at = ? WHERE id = ?`,
		now, now, userID)
	return err
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`,
		now, now, userID)
	return err
}

func (r *usersRepo) UpdateTOTPSecret(ctx context.Context, userID string, secret string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) EnableTOTP(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET totp_enabled_at = ?, updated_at = ? WHERE id = ?`,
		now, now, userID)
	return err
}

func (r *usersRepo) DisableTOTP(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET totp_secret = NULL, totp_enabled_at = NULL, totp_last_step = 0,
			updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) ConsumeTOTPStep(ctx context.Context, userID string, step int64) error {
	// The step only ever moves forward. A no-op update means someone else
	// already consumed this step (or the user is gone), which callers treat
	// as a failed verification.
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET totp_last_step = ?, updated_at = ?
		WHERE id = ? AND totp_last_step < ?`,
		step, time.Now().UTC(), userID, step)
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
