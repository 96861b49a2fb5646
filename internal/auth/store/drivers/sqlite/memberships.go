package sqlite

import (
	"context"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

type membershipsRepo struct {
	db dbtx
}

func (r *membershipsRepo) AddMember(ctx context.Context, m domain.TeamMember) error {
	joined := m.JoinedAt
	if joined.IsZero() {
		joined = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_members (team_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)`,
		m.TeamID, m.UserID, string(m.Role), joined)
	return mapAlreadyExists(err)
}

func (r *membershipsRepo) GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT team_id, user_id, role, joined_at
		FROM team_members WHERE team_id = ? AND user_id = ?`,
		teamID, userID)

	var m domain.TeamMember
	if err := row.Scan(&m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
		return domain.TeamMember{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT team_id, user_id, role, joined_at
		FROM team_members WHERE team_id = ?
		ORDER BY joined_at ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membershipsRepo) RemoveMember(ctx context.Context, teamID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = ? AND user_id = ?`,
		teamID, userID)
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
