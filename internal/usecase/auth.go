package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pattarawat/identity-api/internal/model"
	"github.com/pattarawat/identity-api/internal/repository"
	"github.com/pattarawat/identity-api/shared/auth"
	"github.com/pattarawat/identity-api/shared/security"
)

var (
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers both "no such user" and "wrong password";
	// login responses must not distinguish them.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthUsecase defines the signup, login and user listing flows.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (string, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	ListUsers(ctx context.Context, limit, offset int64) ([]model.Profile, error)
}

// SignupParams defines the parameters for user signup.
type SignupParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
	jwtAuth  auth.JWTAuthenticator
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher security.Hasher,
	jwtAuth auth.JWTAuthenticator,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		jwtAuth:  jwtAuth,
	}
}

// Signup creates a user with the default role and returns a bearer token for
// it. Email uniqueness is enforced by the repository's unique key, so a
// concurrent duplicate signup loses there rather than in a check-then-create
// race here.
func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (string, error) {
	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", ErrEmailAlreadyExists
		}

		return "", fmt.Errorf("creating user: %w", err)
	}

	return u.jwtAuth.Issue(user.ID)
}

// Login verifies the credentials and returns a fresh bearer token.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !u.hasher.Verify(params.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return u.jwtAuth.Issue(user.ID)
}

// ListUsers returns public profiles of users, newest last.
func (u *authUsecase) ListUsers(ctx context.Context, limit, offset int64) ([]model.Profile, error) {
	users, err := u.userRepo.ListUsers(ctx, repository.FilterUsersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}

	return profiles, nil
}
