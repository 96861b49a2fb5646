package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type challengesRepo struct {
	db dbtx
}

const challengeColumns = `id, user_id, channel, code_fingerprint,
	code_expires_at, attempts, created_at, expires_at`

func scanChallenge(row rowScanner) (domain.Challenge, error) {
	var (
		ch          domain.Challenge
		fingerprint sql.NullString
		codeExpires sql.NullTime
	)
	if err := row.Scan(
		&ch.ID, &ch.UserID, &ch.Channel, &fingerprint, &codeExpires,
		&ch.Attempts, &ch.CreatedAt, &ch.ExpiresAt,
	); err != nil {
		return domain.Challenge{}, err
	}
	ch.CodeFingerprint = mapNullStringPtr(fingerprint)
	ch.CodeExpiresAt = mapNullTimePtr(codeExpires)
	return ch, nil
}

func (r *challengesRepo) ReplaceChallenge(ctx context.Context, ch domain.Challenge) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM twofactor_challenges WHERE user_id = ?`, ch.UserID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO twofactor_challenges (
			id, user_id, channel, code_fingerprint, code_expires_at,
			attempts, created_at, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ch.ID, ch.UserID, ch.Channel, mapOptionalString(ch.CodeFingerprint),
		mapOptionalTime(ch.CodeExpiresAt), ch.Attempts, ch.CreatedAt, ch.ExpiresAt,
	)
	return err
}

func (r *challengesRepo) GetChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+challengeColumns+` FROM twofactor_challenges WHERE id = ?`, id)
	ch, err := scanChallenge(row)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	// An expired row reads the same as a missing one.
	if !ch.ExpiresAt.After(time.Now().UTC()) {
		return domain.Challenge{}, store.ErrNotFound
	}
	return ch, nil
}

func (r *challengesRepo) IncrementChallengeAttempts(ctx context.Context, id string) (domain.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE twofactor_challenges SET attempts = attempts + 1
		WHERE id = ?
		RETURNING `+challengeColumns, id)
	ch, err := scanChallenge(row)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	return ch, nil
}

func (r *challengesRepo) SetEmailCode(ctx context.Context, id string, fingerprint string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE twofactor_challenges
		SET channel = ?, code_fingerprint = ?, code_expires_at = ?
		WHERE id = ?`,
		domain.ChannelEmail, fingerprint, expiresAt, id)
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

func (r *challengesRepo) DeleteChallenge(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM twofactor_challenges WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// The delete doubles as the single-use commit point: of two concurrent
	// verifications only one can remove the row.
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM twofactor_challenges WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
