package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pattarawat/identity-api/internal/model"
)

var (
	// ErrUserNotFound is returned when no user record matches the query.
	// ConsumeResetToken deliberately returns it for every failed conjunct
	// (unknown email, wrong token, expired token) so callers cannot tell
	// the cases apart.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when creating a user with an email that
	// already exists. Uniqueness is enforced by the store itself, not by a
	// read-then-write in the caller.
	ErrEmailTaken = errors.New("email already taken")
)

// FilterUsersParams defines the parameters for listing users.
type FilterUsersParams struct {
	Limit  int64
	Offset int64
}

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error)

	// SetResetToken stores a reset token and its expiry on the user record,
	// replacing any previous one.
	SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error

	// ConsumeResetToken atomically swaps the user's password hash for
	// passwordHash and clears the reset token fields, but only if the user
	// exists, the stored token equals token and its expiry is after now.
	// A second attempt with the same token observes the cleared fields and
	// fails with ErrUserNotFound.
	ConsumeResetToken(ctx context.Context, email, token, passwordHash string, now time.Time) error
}
