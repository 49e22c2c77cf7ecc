package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// Register creates a new account. No session is established; the
// caller signs in afterwards.
func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/users/register", req, nil)
}

// Login exchanges credentials for a bearer token and identity.
func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	var resp ports.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers fetches all users.
func (c *Client) ListUsers(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user record.
func (c *Client) UpdateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	var updated entities.User
	if err := c.do(ctx, http.MethodPut, "/api/users", u, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated = u
	}
	return &updated, nil
}

// DeleteUser deletes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}
