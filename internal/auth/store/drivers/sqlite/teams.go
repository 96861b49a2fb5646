package sqlite

import (
	"context"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
)

type teamsRepo struct {
	db dbtx
}

const teamColumns = `id, name, description, manager_id, created_at, updated_at`

func scanTeam(row rowScanner) (domain.Team, error) {
	var t domain.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ManagerID,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Team{}, err
	}
	return t, nil
}

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, description, manager_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.ManagerID, now, now)
	return mapAlreadyExists(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	t, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teamsRepo) ListTeamsByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.description, t.manager_id, t.created_at, t.updated_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, id, name, description string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, time.Now().UTC(), id)
	return err
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	return err
}
