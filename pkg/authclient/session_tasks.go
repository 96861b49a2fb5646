package authclient

import (
	"context"
	"net/http"
)

// CreateTask creates a task owned by the caller. Without a TeamID the task
// is personal; with one the caller must be a member of that team.
func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/tasks", req)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}

	return &task, nil
}

// ListTasks returns every task the caller can see: personal tasks they own
// plus all tasks of their teams.
func (s *Session) ListTasks(ctx context.Context) (*ListTasksResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tasks", nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp ListTasksResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

// GetTask returns one task. Personal tasks are visible to their owner only;
// team tasks to every member of the team.
func (s *Session) GetTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tasks/"+taskID, nil, nil)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}

	return &task, nil
}

// UpdateTask partially updates a task. Nil fields keep their value; an
// empty AssigneeID clears the assignment and a zero DueDate clears the
// deadline.
func (s *Session) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*TaskResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/v1/tasks/"+taskID, req)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask deletes a task. Owners can always delete; for team tasks the
// team manager can too.
func (s *Session) DeleteTask(ctx context.Context, taskID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/tasks/"+taskID, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
