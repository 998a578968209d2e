package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigos/backend/internal/models"
)

func registerUser(t *testing.T, svc *MemoryUserService, name, login string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     name,
		Login:    login,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	user := registerUser(t, svc, "Ana", "ana@x.com")
	assert.Equal(t, []string{models.PermissionUser}, user.Permissions)
	assert.Equal(t, models.StatusActive, user.Status)
	assert.Empty(t, user.Following)

	loggedIn, err := svc.Login(ctx, "ana@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "ana@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestRegisterDuplicateLogin(t *testing.T) {
	svc := NewMemoryUserService()

	registerUser(t, svc, "Ana", "ana@x.com")
	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Other Ana",
		Login:    "ana@x.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestLoginDisabledUser(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	user := registerUser(t, svc, "Ana", "ana@x.com")
	require.NoError(t, svc.Disable(ctx, user.ID))

	_, err := svc.Login(ctx, "ana@x.com", "secret123")
	assert.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, svc.Enable(ctx, user.ID))
	_, err = svc.Login(ctx, "ana@x.com", "secret123")
	assert.NoError(t, err)
}

func TestFollowIsNotIdempotent(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")
	bob := registerUser(t, svc, "Bob", "bob@x.com")

	require.NoError(t, svc.Follow(ctx, ana.ID, bob.ID))

	// A repeat follow is an error, not a no-op.
	err := svc.Follow(ctx, ana.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	following, err := svc.GetFollowing(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, following)
}

func TestUnfollowWithoutFollow(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")
	bob := registerUser(t, svc, "Bob", "bob@x.com")

	err := svc.Unfollow(ctx, ana.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)

	following, err := svc.GetFollowing(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestFollowUnknownUsers(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")

	assert.ErrorIs(t, svc.Follow(ctx, ana.ID, "missing"), ErrUserNotFound)
	assert.ErrorIs(t, svc.Follow(ctx, "missing", ana.ID), ErrUserNotFound)
}

func TestUnfollowRemovesOnlyTarget(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")
	bob := registerUser(t, svc, "Bob", "bob@x.com")
	cleo := registerUser(t, svc, "Cleo", "cleo@x.com")

	require.NoError(t, svc.Follow(ctx, ana.ID, bob.ID))
	require.NoError(t, svc.Follow(ctx, ana.ID, cleo.ID))
	require.NoError(t, svc.Unfollow(ctx, ana.ID, bob.ID))

	following, err := svc.GetFollowing(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{cleo.ID}, following)
}

func TestPermissions(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")

	require.NoError(t, svc.HasPermission(ctx, ana.ID, models.PermissionUser))
	assert.ErrorIs(t, svc.HasPermission(ctx, ana.ID, models.PermissionAdmin), ErrPermissionDenied)

	// Granting an already-held permission is a no-op, not an error.
	user, err := svc.Grant(ctx, ana.ID, []string{models.PermissionAdmin, models.PermissionUser})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.PermissionUser, models.PermissionAdmin}, user.Permissions)

	user, err = svc.Grant(ctx, ana.ID, []string{models.PermissionAdmin})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.PermissionUser, models.PermissionAdmin}, user.Permissions)

	require.NoError(t, svc.HasPermission(ctx, ana.ID, models.PermissionAdmin))

	user, err = svc.Revoke(ctx, ana.ID, []string{models.PermissionAdmin})
	require.NoError(t, err)
	assert.Equal(t, []string{models.PermissionUser}, user.Permissions)

	_, err = svc.Grant(ctx, "missing", []string{models.PermissionAdmin})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHasPermissionDisabledUser(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")
	require.NoError(t, svc.Disable(ctx, ana.ID))

	assert.ErrorIs(t, svc.HasPermission(ctx, ana.ID, models.PermissionUser), ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana", "ana@x.com")

	err := svc.ChangePassword(ctx, ana.ID, "wrong-password", "newsecret")
	assert.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, svc.ChangePassword(ctx, ana.ID, "secret123", "newsecret"))

	_, err = svc.Login(ctx, "ana@x.com", "secret123")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "ana@x.com", "newsecret")
	assert.NoError(t, err)
}

func TestFindIDsByName(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	ana := registerUser(t, svc, "Ana Torres", "ana@x.com")
	registerUser(t, svc, "Bob", "bob@x.com")

	ids, err := svc.FindIDsByName(ctx, "torres")
	require.NoError(t, err)
	assert.Equal(t, []string{ana.ID}, ids)
}
