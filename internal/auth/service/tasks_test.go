package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

func newTaskService(st store.Store) *TaskService {
	return &TaskService{
		Store:  st,
		Policy: &PolicyService{Store: st},
	}
}

func TestPersonalTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTaskService(st)

	user := seedUser(t, st, "casey@example.com", "password123")
	foreign := seedUser(t, st, "other@example.com", "password123")

	task, err := svc.CreateTask(ctx, user.ID, domain.Task{Title: "Water the plants"})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, user.ID, task.OwnerID)
	require.Equal(t, domain.TaskStatusPending, task.Status)
	require.Equal(t, domain.TaskPriorityMedium, task.Priority)
	require.Nil(t, task.TeamID)
	require.Nil(t, task.CompletedAt)

	t.Run("personal tasks are invisible to others", func(t *testing.T) {
		_, err := svc.GetTask(ctx, foreign.ID, task.ID)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = svc.UpdateTask(ctx, foreign.ID, task.ID, TaskPatch{})
		require.ErrorIs(t, err, ErrForbidden)

		require.ErrorIs(t, svc.DeleteTask(ctx, foreign.ID, task.ID), ErrForbidden)
	})

	t.Run("completion is stamped and cleared on transition", func(t *testing.T) {
		completed := domain.TaskStatusCompleted
		updated, err := svc.UpdateTask(ctx, user.ID, task.ID, TaskPatch{Status: &completed})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusCompleted, updated.Status)
		require.NotNil(t, updated.CompletedAt)
		require.WithinDuration(t, time.Now(), *updated.CompletedAt, time.Minute)

		pending := domain.TaskStatusPending
		updated, err = svc.UpdateTask(ctx, user.ID, task.ID, TaskPatch{Status: &pending})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusPending, updated.Status)
		require.Nil(t, updated.CompletedAt)
	})

	t.Run("due date sets and clears", func(t *testing.T) {
		due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
		updated, err := svc.UpdateTask(ctx, user.ID, task.ID, TaskPatch{DueDate: &due})
		require.NoError(t, err)
		require.NotNil(t, updated.DueDate)
		require.True(t, updated.DueDate.Equal(due))

		var zero time.Time
		updated, err = svc.UpdateTask(ctx, user.ID, task.ID, TaskPatch{DueDate: &zero})
		require.NoError(t, err)
		require.Nil(t, updated.DueDate)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteTask(ctx, user.ID, task.ID))
		_, err := svc.GetTask(ctx, user.ID, task.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateTaskValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTaskService(st)

	user := seedUser(t, st, "casey@example.com", "password123")
	other := seedUser(t, st, "other@example.com", "password123")

	t.Run("title is required", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, user.ID, domain.Task{Title: ""})
		require.ErrorIs(t, err, ErrInvalidTask)
		_, err = svc.CreateTask(ctx, user.ID, domain.Task{Title: "   "})
		require.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("status and priority come from the known sets", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, user.ID, domain.Task{
			Title:  "Someday",
			Status: domain.TaskStatus("someday"),
		})
		require.ErrorIs(t, err, ErrInvalidTask)

		_, err = svc.CreateTask(ctx, user.ID, domain.Task{
			Title:    "Whenever",
			Priority: domain.TaskPriority("whenever"),
		})
		require.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("personal tasks take no assignee", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, user.ID, domain.Task{
			Title:      "Delegated chores",
			AssigneeID: &other.ID,
		})
		require.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("ownership is never taken from the request", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, user.ID, domain.Task{
			Title:   "Mine regardless",
			OwnerID: other.ID,
		})
		require.NoError(t, err)
		require.Equal(t, user.ID, task.OwnerID)
	})

	t.Run("a task born completed is stamped at birth", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, user.ID, domain.Task{
			Title:  "Already done",
			Status: domain.TaskStatusCompleted,
		})
		require.NoError(t, err)
		require.NotNil(t, task.CompletedAt)
	})
}

func TestTeamTaskPolicy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTaskService(st)

	manager := seedManager(t, st, "pm@example.com", "password123")
	owner := seedUser(t, st, "owner@example.com", "password123")
	assignee := seedUser(t, st, "assignee@example.com", "password123")
	bystander := seedUser(t, st, "bystander@example.com", "password123")
	outsider := seedUser(t, st, "outsider@example.com", "password123")
	team := seedTeam(t, st, manager, owner, assignee, bystander)

	task, err := svc.CreateTask(ctx, owner.ID, domain.Task{
		Title:      "Ship the release",
		Priority:   domain.TaskPriorityHigh,
		TeamID:     &team.ID,
		AssigneeID: &assignee.ID,
	})
	require.NoError(t, err)
	require.Equal(t, assignee.ID, *task.AssigneeID)

	t.Run("outsiders are shut out", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, outsider.ID, domain.Task{Title: "Infiltrate", TeamID: &team.ID})
		require.ErrorIs(t, err, ErrForbidden)

		_, err = svc.GetTask(ctx, outsider.ID, task.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("every member views, only involved members change", func(t *testing.T) {
		_, err := svc.GetTask(ctx, bystander.ID, task.ID)
		require.NoError(t, err)

		_, err = svc.UpdateTask(ctx, bystander.ID, task.ID, TaskPatch{})
		require.ErrorIs(t, err, ErrForbidden)
		require.ErrorIs(t, svc.DeleteTask(ctx, bystander.ID, task.ID), ErrForbidden)
	})

	t.Run("the assignee works the task", func(t *testing.T) {
		inProgress := domain.TaskStatusInProgress
		updated, err := svc.UpdateTask(ctx, assignee.ID, task.ID, TaskPatch{Status: &inProgress})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusInProgress, updated.Status)
	})

	t.Run("the owner keeps editing", func(t *testing.T) {
		urgent := domain.TaskPriorityUrgent
		updated, err := svc.UpdateTask(ctx, owner.ID, task.ID, TaskPatch{Priority: &urgent})
		require.NoError(t, err)
		require.Equal(t, domain.TaskPriorityUrgent, updated.Priority)
	})

	t.Run("the manager touches everything", func(t *testing.T) {
		desc := "Cut the branch first"
		_, err := svc.UpdateTask(ctx, manager.ID, task.ID, TaskPatch{Description: &desc})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTask(ctx, manager.ID, task.ID))
	})
}

func TestTaskAssignmentRules(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTaskService(st)

	manager := seedManager(t, st, "pm@example.com", "password123")
	member := seedUser(t, st, "dev@example.com", "password123")
	nonmember := seedUser(t, st, "stranger@example.com", "password123")
	team := seedTeam(t, st, manager, member)

	t.Run("assignee must be on the team", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, member.ID, domain.Task{
			Title:      "Misdirected",
			TeamID:     &team.ID,
			AssigneeID: &nonmember.ID,
		})
		require.ErrorIs(t, err, ErrAssigneeNotMember)
	})

	task, err := svc.CreateTask(ctx, member.ID, domain.Task{
		Title:  "Unclaimed work",
		TeamID: &team.ID,
	})
	require.NoError(t, err)
	require.Nil(t, task.AssigneeID)

	t.Run("assignment sets, clears and rejects strangers", func(t *testing.T) {
		updated, err := svc.UpdateTask(ctx, member.ID, task.ID, TaskPatch{AssigneeID: &member.ID})
		require.NoError(t, err)
		require.Equal(t, member.ID, *updated.AssigneeID)

		_, err = svc.UpdateTask(ctx, member.ID, task.ID, TaskPatch{AssigneeID: &nonmember.ID})
		require.ErrorIs(t, err, ErrAssigneeNotMember)

		unassigned := ""
		updated, err = svc.UpdateTask(ctx, member.ID, task.ID, TaskPatch{AssigneeID: &unassigned})
		require.NoError(t, err)
		require.Nil(t, updated.AssigneeID)
	})

	t.Run("personal tasks reject assignment patches", func(t *testing.T) {
		personal, err := svc.CreateTask(ctx, member.ID, domain.Task{Title: "Just mine"})
		require.NoError(t, err)

		_, err = svc.UpdateTask(ctx, member.ID, personal.ID, TaskPatch{AssigneeID: &manager.ID})
		require.ErrorIs(t, err, ErrInvalidTask)
	})
}

func TestListTasksVisibility(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTaskService(st)

	manager := seedManager(t, st, "pm@example.com", "password123")
	m1 := seedUser(t, st, "one@example.com", "password123")
	m2 := seedUser(t, st, "two@example.com", "password123")
	loner := seedUser(t, st, "loner@example.com", "password123")
	team := seedTeam(t, st, manager, m1, m2)

	mustCreate := func(userID string, task domain.Task) domain.Task {
		t.Helper()
		created, err := svc.CreateTask(ctx, userID, task)
		require.NoError(t, err)
		return created
	}

	personal := mustCreate(m1.ID, domain.Task{Title: "Private errand"})
	teamA := mustCreate(m1.ID, domain.Task{Title: "Team chore A", TeamID: &team.ID})
	teamB := mustCreate(m2.ID, domain.Task{Title: "Team chore B", TeamID: &team.ID})
	lonerTask := mustCreate(loner.ID, domain.Task{Title: "Solo work"})

	ids := func(tasks []domain.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	got, err := svc.ListTasks(ctx, m1.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{personal.ID, teamA.ID, teamB.ID}, ids(got))

	got, err = svc.ListTasks(ctx, m2.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{teamA.ID, teamB.ID}, ids(got))

	got, err = svc.ListTasks(ctx, manager.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{teamA.ID, teamB.ID}, ids(got))

	got, err = svc.ListTasks(ctx, loner.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{lonerTask.ID}, ids(got))
}
