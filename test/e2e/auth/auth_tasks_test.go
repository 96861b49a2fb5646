package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskhubhq/taskhub/pkg/authclient"
)

// TestPersonalTaskLifecycle covers create, read, patch and delete of a task
// that lives outside any team.
func TestPersonalTaskLifecycle(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	_, session := createMember(t, env, client, "dana@example.com", "Dana", "Passw0rd!")
	profile, err := session.Me(ctx)
	require.NoError(t, err)

	// Create with nothing but a title; the rest defaults
	task, err := session.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Water the plants"})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, "pending", task.Status, "Status should default to pending")
	require.Equal(t, "medium", task.Priority, "Priority should default to medium")
	require.Equal(t, profile.UserID, task.OwnerID, "Caller should own the task")
	require.Nil(t, task.TeamID)
	require.Nil(t, task.AssigneeID)
	require.Nil(t, task.CompletedAt)

	t.Logf("Created task %s", task.ID)

	got, err := session.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, got.ID)
	require.Equal(t, "Water the plants", got.Title)

	// Patch one field; the others keep their value
	desc := "The ficus first"
	updated, err := session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Water the plants", updated.Title, "Unpatched fields should keep their value")
	require.Equal(t, desc, updated.Description)

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	updated, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	require.WithinDuration(t, due, *updated.DueDate, time.Second)

	// Completion is stamped on the way in and cleared on the way out
	inProgress, completed := "in_progress", "completed"
	updated, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err)
	require.Equal(t, "in_progress", updated.Status)
	require.Nil(t, updated.CompletedAt)

	updated, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, "completed", updated.Status)
	require.NotNil(t, updated.CompletedAt, "Completing a task should stamp completed_at")

	updated, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt, "Reopening a task should clear completed_at")

	// A zero due date clears the deadline
	noDue := time.Time{}
	updated, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{DueDate: &noDue})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate, "A zero due_date should clear the deadline")

	err = session.DeleteTask(ctx, task.ID)
	require.NoError(t, err)

	_, err = session.GetTask(ctx, task.ID)
	assertAPIError(t, err, http.StatusNotFound, authclient.ErrorCodeNotFound,
		"Deleted task should be gone")

	t.Logf("Task deleted")
}

// TestTaskValidation checks title, status and priority validation on create
// and patch.
func TestTaskValidation(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	_, session := createMember(t, env, client, "vern@example.com", "Vern", "Passw0rd!")

	// Title is the one required field
	_, err := session.CreateTask(ctx, authclient.CreateTaskRequest{Title: "   "})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"Blank title should be rejected")

	// Made-up enum values
	_, err = session.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Ship it", Status: "done"})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"Unknown status should be rejected")

	_, err = session.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Ship it", Priority: "urgent-ish"})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"Unknown priority should be rejected")

	// Explicit values are honored, and a task born completed is stamped at birth
	task, err := session.CreateTask(ctx, authclient.CreateTaskRequest{
		Title:    "Already done",
		Status:   "completed",
		Priority: "low",
	})
	require.NoError(t, err)
	require.Equal(t, "completed", task.Status)
	require.Equal(t, "low", task.Priority)
	require.NotNil(t, task.CompletedAt, "A task created as completed should carry completed_at")

	// Patches get the same scrutiny
	badStatus := "someday"
	_, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &badStatus})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"Unknown status in a patch should be rejected")

	blank := ""
	_, err = session.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Title: &blank})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"A patch should not blank the title")

	t.Logf("Validation rules hold")
}

// TestPersonalTaskPrivacy verifies a personal task is visible to its owner
// and nobody else.
func TestPersonalTaskPrivacy(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	_, alice := createMember(t, env, client, "alice@example.com", "Alice", "Passw0rd!")
	_, bob := createMember(t, env, client, "bob@example.com", "Bob", "Passw0rd!")

	task, err := alice.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Private notes"})
	require.NoError(t, err)

	// Another user can neither see, change nor delete it
	_, err = bob.GetTask(ctx, task.ID)
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"Personal tasks should be owner-only")

	title := "Defaced"
	_, err = bob.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Title: &title})
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"Others should not update a personal task")

	err = bob.DeleteTask(ctx, task.ID)
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"Others should not delete a personal task")

	// Nor does it show up in their list
	list, err := bob.ListTasks(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Tasks)

	// A task that never existed is a plain 404
	_, err = alice.GetTask(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ")
	assertAPIError(t, err, http.StatusNotFound, authclient.ErrorCodeNotFound,
		"Unknown task IDs should 404")

	// The owner is unaffected
	got, err := alice.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "Private notes", got.Title)
}

// TestTeamTaskPermissions covers who may read, change and delete a task that
// lives in a team.
func TestTeamTaskPermissions(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	manager := loginUser(t, client, managerEmail, managerPassword)
	team, err := manager.CreateTeam(ctx, "Backend", "")
	require.NoError(t, err)

	_, rita := inviteAndJoin(t, env, client, manager, team.ID, "rita@example.com", "Rita")
	_, sam := inviteAndJoin(t, env, client, manager, team.ID, "sam@example.com", "Sam")

	// A member creates a task inside the team
	task, err := rita.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Rotate the pager", TeamID: &team.ID})
	require.NoError(t, err)
	require.NotNil(t, task.TeamID)
	require.Equal(t, team.ID, *task.TeamID)

	// Every member can read it
	got, err := sam.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, got.ID)

	// ...but only the owner, the assignee or the manager may change it
	title := "Rotate the pager weekly"
	_, err = sam.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Title: &title})
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"A bystander member should not update the task")

	err = sam.DeleteTask(ctx, task.ID)
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"A bystander member should not delete the task")

	// The owner can
	updated, err := rita.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)

	// The manager can touch any team task
	prio := "high"
	updated, err = manager.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Priority: &prio})
	require.NoError(t, err)
	require.Equal(t, "high", updated.Priority)

	err = manager.DeleteTask(ctx, task.ID)
	require.NoError(t, err, "The team manager should delete any team task")

	// Outsiders cannot even create a task in the team
	_, outsider := createMember(t, env, client, "drew@example.com", "Drew", "Passw0rd!")
	_, err = outsider.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Sneaky", TeamID: &team.ID})
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"Non-members should not create team tasks")

	t.Logf("Team task permissions hold")
}

// TestTaskAssignment covers assignment on create and patch, the rights it
// grants, and the membership check behind it.
func TestTaskAssignment(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	manager := loginUser(t, client, managerEmail, managerPassword)
	team, err := manager.CreateTeam(ctx, "Support", "")
	require.NoError(t, err)

	_, owner := inviteAndJoin(t, env, client, manager, team.ID, "owen@example.com", "Owen")
	anaID, ana := inviteAndJoin(t, env, client, manager, team.ID, "ana@example.com", "Ana")
	zedID, _ := createMember(t, env, client, "zed@example.com", "Zed", "Passw0rd!")

	// Assignment only makes sense inside a team
	_, err = owner.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Solo", AssigneeID: &anaID})
	assertAPIError(t, err, http.StatusBadRequest, "invalid_task",
		"Personal tasks should not carry an assignee")

	// The assignee must be on the team
	_, err = owner.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Triage", TeamID: &team.ID, AssigneeID: &zedID})
	assertAPIError(t, err, http.StatusBadRequest, "assignee_not_member",
		"Assignees must be team members")

	task, err := owner.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Triage", TeamID: &team.ID, AssigneeID: &anaID})
	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	require.Equal(t, anaID, *task.AssigneeID)

	t.Logf("Task %s assigned to %s", task.ID, anaID)

	// Being assigned grants update rights
	inProgress := "in_progress"
	updated, err := ana.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &inProgress})
	require.NoError(t, err, "The assignee should update their task")
	require.Equal(t, "in_progress", updated.Status)

	// An empty assignee_id clears the assignment...
	unassigned := ""
	updated, err = owner.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{AssigneeID: &unassigned})
	require.NoError(t, err)
	require.Nil(t, updated.AssigneeID, "An empty assignee_id should clear the assignment")

	// ...and with it the update rights
	pending := "pending"
	_, err = ana.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{Status: &pending})
	assertAPIError(t, err, http.StatusForbidden, authclient.ErrorCodeForbidden,
		"An unassigned member should lose update rights")

	// Reassignment gets the same membership check
	_, err = owner.UpdateTask(ctx, task.ID, authclient.UpdateTaskRequest{AssigneeID: &zedID})
	assertAPIError(t, err, http.StatusBadRequest, "assignee_not_member",
		"Reassignment outside the team should fail")
}

// TestTaskListScopes verifies the task list is personal tasks plus team
// tasks, and nothing of other people's private work.
func TestTaskListScopes(t *testing.T) {
	env, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authclient.NewClient(env.BaseURL)
	ctx := t.Context()

	manager := loginUser(t, client, managerEmail, managerPassword)
	team, err := manager.CreateTeam(ctx, "Docs", "")
	require.NoError(t, err)

	_, mia := inviteAndJoin(t, env, client, manager, team.ID, "mia@example.com", "Mia")

	personal, err := mia.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	teamTask, err := mia.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Draft the changelog", TeamID: &team.ID})
	require.NoError(t, err)

	reviewTask, err := manager.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Review the changelog", TeamID: &team.ID})
	require.NoError(t, err)

	_, err = manager.CreateTask(ctx, authclient.CreateTaskRequest{Title: "Plan the offsite"})
	require.NoError(t, err)

	// The member sees their personal task plus every team task
	list, err := mia.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, list.Tasks, 3, "Member should see their personal task plus all team tasks")

	seen := make(map[string]bool, len(list.Tasks))
	for _, task := range list.Tasks {
		seen[task.ID] = true
	}
	require.True(t, seen[personal.ID])
	require.True(t, seen[teamTask.ID])
	require.True(t, seen[reviewTask.ID])

	// The manager sees the team tasks and their own offsite plan, but not
	// the member's milk
	list, err = manager.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, list.Tasks, 3)
	for _, task := range list.Tasks {
		require.NotEqual(t, personal.ID, task.ID, "Another user's personal task should stay private")
	}

	t.Logf("List scopes hold: %d tasks for member, %d for manager", 3, len(list.Tasks))
}
