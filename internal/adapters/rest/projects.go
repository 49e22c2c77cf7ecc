package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]entities.Project, error) {
	var projects []entities.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (*entities.Project, error) {
	var project entities.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ProjectsForUser fetches the projects assigned to a user.
func (c *Client) ProjectsForUser(ctx context.Context, userID int64) ([]entities.Project, error) {
	var projects []entities.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/user/%d", userID), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SaveProject creates or updates a project. The backend creates
// through PUT; a zero id means create.
func (c *Client) SaveProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	var saved entities.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects", p, &saved); err != nil {
		return nil, err
	}
	if saved.ID == 0 {
		// Empty-body response; echo the input back to the caller.
		saved = p
	}
	return &saved, nil
}

// DeleteProject deletes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}
