package sqlite

import (
	"context"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) ReplaceInvitation(ctx context.Context, inv domain.TeamInvitation) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM team_invitations WHERE team_id = ? AND email = ?`,
		inv.TeamID, inv.Email); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_invitations (id, team_id, email, inviter_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TeamID, inv.Email, inv.InviterID, inv.TokenHash,
		inv.ExpiresAt, inv.CreatedAt)
	return err
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.TeamInvitation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, team_id, email, inviter_id, token_hash, expires_at, created_at
		FROM team_invitations WHERE token_hash = ?`, hash)

	var inv domain.TeamInvitation
	if err := row.Scan(&inv.ID, &inv.TeamID, &inv.Email, &inv.InviterID,
		&inv.TokenHash, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		return domain.TeamInvitation{}, mapNotFound(err)
	}
	// An expired row reads the same as a missing one.
	if !inv.ExpiresAt.After(time.Now().UTC()) {
		return domain.TeamInvitation{}, store.ErrNotFound
	}
	return inv, nil
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM team_invitations WHERE id = ?`, id)
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

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM team_invitations WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
