// internal/identity/client.go
package identity

import (
	"context"
	"fmt"
	"net/http"

	"mediastore/internal/api"
)

// client implements Service against the backend's auth and user endpoints.
type client struct {
	api *api.Client
}

// NewClient creates an identity service backed by the shared API client.
func NewClient(apiClient *api.Client) Service {
	return &client{api: apiClient}
}

// Register creates a new account. The user still has to log in afterwards;
// registration returns no token.
func (c *client) Register(ctx context.Context, reg Registration) error {
	if err := c.api.Do(ctx, http.MethodPost, "/api/v1/auth/register", reg, nil); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var result LoginResult
	if err := c.api.Do(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	return &result, nil
}

// ChangePassword updates the authenticated user's password.
func (c *client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{OldPassword: oldPassword, NewPassword: newPassword}

	if err := c.api.Do(ctx, http.MethodPut, "/users/change-password", body, nil); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// Users lists accounts for the admin console.
func (c *client) Users(ctx context.Context, page, size int) (*api.Page[User], error) {
	var result api.Page[User]
	path := fmt.Sprintf("/users?page=%d&size=%d", page, size)
	if err := c.api.Get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &result, nil
}

// Block suspends an account.
func (c *client) Block(ctx context.Context, userID int) error {
	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/block", userID), nil, nil); err != nil {
		return fmt.Errorf("failed to block user %d: %w", userID, err)
	}
	return nil
}

// Unblock lifts a suspension.
func (c *client) Unblock(ctx context.Context, userID int) error {
	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/unblock", userID), nil, nil); err != nil {
		return fmt.Errorf("failed to unblock user %d: %w", userID, err)
	}
	return nil
}
