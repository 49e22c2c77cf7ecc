package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// ListTasks fetches all tasks.
func (c *Client) ListTasks(ctx context.Context) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (*entities.Task, error) {
	var task entities.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// TasksForUser fetches the tasks assigned to a user.
func (c *Client) TasksForUser(ctx context.Context, userID int64) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/user/%d", userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	var created entities.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", t, &created); err != nil {
		return nil, err
	}
	if created.ID == 0 {
		created = t
	}
	return &created, nil
}

// UpdateTask replaces a task record.
func (c *Client) UpdateTask(ctx context.Context, t entities.Task) (*entities.Task, error) {
	var updated entities.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks", t, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = t
	}
	return &updated, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}
