package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pattarawat/identity-api/internal/model"
)

// userMemoryRepository is a mutex-guarded in-memory UserRepository with the
// same semantics as the Mongo implementation. Used by tests and local
// development without a database.
type userMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by id
}

// NewUserMemoryRepository creates an in-memory UserRepository.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{
		users: make(map[string]*model.User),
	}
}

func (r *userMemoryRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored

	return user, nil
}

func (r *userMemoryRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByEmail(email)
	if user == nil {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *userMemoryRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	limit := params.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	offset := params.Offset
	if offset > int64(len(all)) {
		offset = int64(len(all))
	}
	all = all[offset:]

	if int64(len(all)) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (r *userMemoryRepository) SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()

	return nil
}

func (r *userMemoryRepository) ConsumeResetToken(
	ctx context.Context,
	email, token, passwordHash string,
	now time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByEmail(email)
	if user == nil ||
		user.ResetToken == nil ||
		user.ResetTokenExpiresAt == nil ||
		*user.ResetToken != token ||
		!user.ResetTokenExpiresAt.After(now) {
		return ErrUserNotFound
	}

	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	user.UpdatedAt = time.Now()

	return nil
}

func (r *userMemoryRepository) findByEmail(email string) *model.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
