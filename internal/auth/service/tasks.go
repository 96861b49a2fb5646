package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/idx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

var (
	// ErrInvalidTask is returned when task fields fail validation.
	ErrInvalidTask = errors.New("invalid_task")

	// ErrAssigneeNotMember is returned when assigning a team task to
	// someone outside the team.
	ErrAssigneeNotMember = errors.New("assignee_not_member")
)

// TaskService manages tasks. A task either lives in a team or is personal
// (no team); the policy rules decide who may touch what.
type TaskService struct {
	Store  store.Store
	Policy *PolicyService
}

// TaskPatch is a partial task update. Nil leaves a field untouched; an
// empty AssigneeID or zero DueDate clears the field.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
}

// CreateTask creates a task owned by the caller. Team tasks require
// membership; personal tasks carry no team and no assignee.
func (s *TaskService) CreateTask(ctx context.Context, userID string, t domain.Task) (domain.Task, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Shape checks. Defaults fill in what the caller left empty.
	if strings.TrimSpace(t.Title) == "" {
		return domain.Task{}, ErrInvalidTask
	}
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = domain.TaskPriorityMedium
	}
	if !domain.ValidTaskStatus(t.Status) || !domain.ValidTaskPriority(t.Priority) {
		return domain.Task{}, ErrInvalidTask
	}

	// 2. Ownership is never taken from the request.
	t.ID = idx.New().String()
	t.OwnerID = userID
	t.CreatedAt = now
	t.UpdatedAt = now

	// 3. Assignment only makes sense inside a team.
	if t.AssigneeID != nil {
		if t.TeamID == nil {
			return domain.Task{}, ErrInvalidTask
		}
		if err := s.assertAssignable(ctx, *t.TeamID, *t.AssigneeID); err != nil {
			return domain.Task{}, err
		}
	}

	// 4. Membership gate for team tasks.
	if err := s.Policy.AuthorizeTask(ctx, userID, ActionTaskCreate, t); err != nil {
		return domain.Task{}, err
	}

	// 5. A task born completed is stamped at birth.
	if t.Status == domain.TaskStatusCompleted {
		t.CompletedAt = &now
	}

	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		l.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, err
	}

	l.Info("task created",
		slog.String("task_id", t.ID),
		slog.String("owner_id", userID))
	return t, nil
}

// GetTask returns one task the caller may view.
func (s *TaskService) GetTask(ctx context.Context, userID, taskID string) (domain.Task, error) {
	t, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.Policy.AuthorizeTask(ctx, userID, ActionTaskView, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// ListTasks returns the caller's personal tasks plus every task of the
// teams they belong to, newest first.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.Store.Tasks().ListTasksByUser(ctx, userID)
}

// UpdateTask applies a patch to a task. The team a task lives in and its
// owner never change; completion is stamped on the transition into
// completed and cleared on the way out.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, p TaskPatch) (domain.Task, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	t, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.Policy.AuthorizeTask(ctx, userID, ActionTaskUpdate, t); err != nil {
		return domain.Task{}, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return domain.Task{}, ErrInvalidTask
		}
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !domain.ValidTaskStatus(*p.Status) {
			return domain.Task{}, ErrInvalidTask
		}
		if *p.Status == domain.TaskStatusCompleted {
			if t.Status != domain.TaskStatusCompleted {
				t.CompletedAt = &now
			}
		} else {
			t.CompletedAt = nil
		}
		t.Status = *p.Status
	}
	if p.Priority != nil {
		if !domain.ValidTaskPriority(*p.Priority) {
			return domain.Task{}, ErrInvalidTask
		}
		t.Priority = *p.Priority
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID == "" {
			t.AssigneeID = nil
		} else {
			if t.TeamID == nil {
				return domain.Task{}, ErrInvalidTask
			}
			if err := s.assertAssignable(ctx, *t.TeamID, *p.AssigneeID); err != nil {
				return domain.Task{}, err
			}
			t.AssigneeID = p.AssigneeID
		}
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			t.DueDate = p.DueDate
		}
	}

	t.UpdatedAt = now
	if err := s.Store.Tasks().UpdateTask(ctx, t); err != nil {
		l.Error("failed to update task",
			slog.String("task_id", taskID),
			slog.Any("error", err))
		return domain.Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task the caller may delete.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	t, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.Policy.AuthorizeTask(ctx, userID, ActionTaskDelete, t); err != nil {
		return err
	}
	if err := s.Store.Tasks().DeleteTask(ctx, taskID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("task deleted",
		slog.String("task_id", taskID),
		slog.String("user_id", userID))
	return nil
}

// assertAssignable checks that the assignee is on the team.
func (s *TaskService) assertAssignable(ctx context.Context, teamID, assigneeID string) error {
	_, err := s.Store.Memberships().GetMember(ctx, teamID, assigneeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAssigneeNotMember
		}
		return err
	}
	return nil
}
