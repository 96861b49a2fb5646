package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// TasksHandler handles all task endpoints.
type TasksHandler struct {
	Service *service.TaskService
}

func taskResponse(t domain.Task) authclient.TaskResponse {
	return authclient.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		TeamID:      t.TeamID,
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// writeTaskError maps task service failures onto the error envelope.
func writeTaskError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidTask):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_task",
			"Task is malformed: check title, status, priority and team fields")
	case errors.Is(err, service.ErrAssigneeNotMember):
		httpx.WriteError(w, http.StatusBadRequest, "assignee_not_member",
			"Assignee must be a member of the task's team")
	case errors.Is(err, service.ErrForbidden):
		authclient.ErrForbidden.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		authclient.ErrNotFound.WriteError(w)
	default:
		return false
	}
	return true
}

// HandleCreate handles POST /v1/tasks
//
//	@Summary		Create a task
//	@Description	Creates a task owned by the caller. Without a team_id the task is personal; with one the caller must be a team member. Assignment requires a team.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.CreateTaskRequest	true	"Task creation request"
//	@Success		201		{object}	authclient.TaskResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Malformed task or assignee outside the team"
//	@Failure		401		{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authclient.ErrorResponse	"Caller is not a member of the team"
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Get user ID from context (injected by AuthnMiddleware)
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	task := domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		TeamID:      req.TeamID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}

	created, err := h.Service.CreateTask(ctx, userID, task)
	if err != nil {
		if !writeTaskError(w, err) {
			log.Error("failed to create task", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, taskResponse(created))
}

// HandleList handles GET /v1/tasks
//
//	@Summary		List visible tasks
//	@Description	Returns every task the caller can see: personal tasks they own plus all tasks of their teams.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authclient.ListTasksResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	tasks, err := h.Service.ListTasks(ctx, userID)
	if err != nil {
		log.Error("failed to list tasks", "user_id", userID, "err", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	resp := authclient.ListTasksResponse{
		Tasks: make([]authclient.TaskResponse, len(tasks)),
	}
	for i, task := range tasks {
		resp.Tasks[i] = taskResponse(task)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/tasks/{id}
//
//	@Summary		Get a task
//	@Description	Returns one task. Personal tasks are owner only; team tasks are visible to every team member.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task ID (ULID)"
//	@Success		200	{object}	authclient.TaskResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Not visible to the caller"
//	@Failure		404	{object}	authclient.ErrorResponse	"No such task"
//	@Router			/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	task, err := h.Service.GetTask(ctx, userID, r.PathValue("id"))
	if err != nil {
		if !writeTaskError(w, err) {
			log.Error("failed to load task", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// HandleUpdate handles PATCH /v1/tasks/{id}
//
//	@Summary		Update a task
//	@Description	Partially updates a task. Absent fields keep their value; an empty assignee_id clears the assignment and a zero due_date clears the deadline. Completing a task stamps completed_at.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Task ID (ULID)"
//	@Param			request	body		authclient.UpdateTaskRequest	true	"Fields to update"
//	@Success		200		{object}	authclient.TaskResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Malformed patch or assignee outside the team"
//	@Failure		401		{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authclient.ErrorResponse	"Caller may not modify this task"
//	@Failure		404		{object}	authclient.ErrorResponse	"No such task"
//	@Router			/v1/tasks/{id} [patch].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	taskID := r.PathValue("id")

	var req authclient.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	task, err := h.Service.UpdateTask(ctx, userID, taskID, patch)
	if err != nil {
		if !writeTaskError(w, err) {
			log.Error("failed to update task", "user_id", userID, "task_id", taskID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// HandleDelete handles DELETE /v1/tasks/{id}
//
//	@Summary		Delete a task
//	@Description	Deletes a task. Owners can always delete; for team tasks the team manager can too.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Task ID (ULID)"
//	@Success		204	"Task deleted"
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Caller may not delete this task"
//	@Failure		404	{object}	authclient.ErrorResponse	"No such task"
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	taskID := r.PathValue("id")

	if err := h.Service.DeleteTask(ctx, userID, taskID); err != nil {
		if !writeTaskError(w, err) {
			log.Error("failed to delete task", "user_id", userID, "task_id", taskID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
