// internal/identity/service.go
package identity

import (
	"context"

	"mediastore/internal/api"
)

// Service defines account operations. Register and Login are anonymous;
// ChangePassword acts on the authenticated user; Users, Block and Unblock are
// admin-only.
type Service interface {
	Register(ctx context.Context, reg Registration) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Users(ctx context.Context, page, size int) (*api.Page[User], error)
	Block(ctx context.Context, userID int) error
	Unblock(ctx context.Context, userID int) error
}
