package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pattarawat/identity-api/internal/model"
)

func newUser(id, email string) *model.User {
	return &model.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
}

func TestMemory_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()

	_, err := repo.CreateUser(ctx, newUser("u1", "a@x.com"))
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, newUser("u2", "a@x.com"))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemory_GetUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()

	_, err := repo.CreateUser(ctx, newUser("u1", "a@x.com"))
	require.NoError(t, err)

	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)

	_, err = repo.GetUser(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemory_ConsumeResetToken_SingleUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()
	now := time.Now()

	_, err := repo.CreateUser(ctx, newUser("u1", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(ctx, "u1", "token-1", now.Add(time.Hour)))

	require.NoError(t, repo.ConsumeResetToken(ctx, "a@x.com", "token-1", "newhash", now))

	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "newhash", user.PasswordHash)
	require.Nil(t, user.ResetToken)
	require.Nil(t, user.ResetTokenExpiresAt)

	// Second spend of the same token must fail.
	err = repo.ConsumeResetToken(ctx, "a@x.com", "token-1", "otherhash", now)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemory_ConsumeResetToken_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()
	now := time.Now()

	_, err := repo.CreateUser(ctx, newUser("u1", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(ctx, "u1", "token-1", now.Add(-time.Minute)))

	err = repo.ConsumeResetToken(ctx, "a@x.com", "token-1", "newhash", now)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemory_ConsumeResetToken_WrongToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()
	now := time.Now()

	_, err := repo.CreateUser(ctx, newUser("u1", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(ctx, "u1", "token-1", now.Add(time.Hour)))

	err = repo.ConsumeResetToken(ctx, "a@x.com", "token-2", "newhash", now)
	require.ErrorIs(t, err, ErrUserNotFound)

	// The stored token survives a failed attempt.
	user, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)
}

func TestMemory_ListUsers_Pagination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserMemoryRepository()

	for _, u := range []*model.User{
		newUser("u1", "a@x.com"),
		newUser("u2", "b@x.com"),
		newUser("u3", "c@x.com"),
	} {
		_, err := repo.CreateUser(ctx, u)
		require.NoError(t, err)
	}

	users, err := repo.ListUsers(ctx, FilterUsersParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.ListUsers(ctx, FilterUsersParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, users, 1)

	users, err = repo.ListUsers(ctx, FilterUsersParams{Offset: 100})
	require.NoError(t, err)
	require.Empty(t, users)
}
