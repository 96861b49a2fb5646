package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, title, description, status, priority, owner_id,
	assignee_id, team_id, due_date, completed_at, created_at, updated_at`

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t           domain.Task
		assigneeID  sql.NullString
		teamID      sql.NullString
		dueDate     sql.NullTime
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.OwnerID,
		&assigneeID, &teamID, &dueDate, &completedAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return domain.Task{}, err
	}
	t.AssigneeID = mapNullStringPtr(assigneeID)
	t.TeamID = mapNullStringPtr(teamID)
	t.DueDate = mapNullTimePtr(dueDate)
	t.CompletedAt = mapNullTimePtr(completedAt)
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, status, priority, owner_id,
			assignee_id, team_id, due_date, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.OwnerID, mapOptionalString(t.AssigneeID), mapOptionalString(t.TeamID),
		mapOptionalTime(t.DueDate), mapOptionalTime(t.CompletedAt), now, now,
	)
	return mapAlreadyExists(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	// Personal tasks the user owns plus every task of teams they belong to.
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE (team_id IS NULL AND owner_id = ?)
		   OR team_id IN (SELECT team_id FROM team_members WHERE user_id = ?)
		ORDER BY created_at DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?,
			assignee_id = ?, due_date = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalString(t.AssigneeID), mapOptionalTime(t.DueDate),
		mapOptionalTime(t.CompletedAt), time.Now().UTC(), t.ID,
	)
	return err
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}
