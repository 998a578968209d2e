package services

import (
	"context"
	"errors"

	"github.com/amigos/backend/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrLoginTaken       = errors.New("login already registered")
	ErrBadCredentials   = errors.New("bad credentials")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// UserService owns identity, credentials and the follow graph.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, login, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Grant(ctx context.Context, userID string, permissions []string) (*models.User, error)
	Revoke(ctx context.Context, userID string, permissions []string) (*models.User, error)
	Enable(ctx context.Context, userID string) error
	Disable(ctx context.Context, userID string) error

	// HasPermission is the authorization gate: ErrUserNotFound for absent or
	// disabled users, ErrPermissionDenied when the permission is not held.
	HasPermission(ctx context.Context, userID, permission string) error

	// Follow and Unfollow are deliberately non-idempotent: a repeat follow
	// fails with ErrAlreadyFollowing, an unmatched unfollow with
	// ErrNotFollowing.
	Follow(ctx context.Context, callerID, targetID string) error
	Unfollow(ctx context.Context, callerID, targetID string) error
	GetFollowing(ctx context.Context, userID string) ([]string, error)

	// FindIDsByName returns ids of active users whose name contains the
	// query (case-insensitive). Used by the profile name search.
	FindIDsByName(ctx context.Context, query string) ([]string, error)
}
