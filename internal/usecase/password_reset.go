package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/pattarawat/identity-api/internal/repository"
	"github.com/pattarawat/identity-api/shared/security"
)

// resetTokenTTL is fixed by design; reset tokens are short-lived regardless
// of deployment configuration.
const resetTokenTTL = time.Hour

// ErrInvalidResetToken covers unknown email, wrong token and expired token
// alike, so reset responses cannot be used to probe which accounts exist.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// PasswordResetUsecase defines the password reset token lifecycle.
type PasswordResetUsecase interface {
	// RequestPasswordReset generates and stores a single-use reset token for
	// the account. An unknown email yields an empty token and no error.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword changes the password authorized by the given token and
	// invalidates the token in the same store update.
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	hasher security.Hasher,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Do not reveal that the email is unregistered.
			return "", nil
		}

		return "", fmt.Errorf("looking up user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", fmt.Errorf("storing reset token: %w", err)
	}

	return token, nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	passwordHash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// The repository validates and clears the token in one atomic update, so
	// the token cannot be spent twice.
	if err := u.userRepo.ConsumeResetToken(ctx, email, token, passwordHash, time.Now()); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}

		return fmt.Errorf("consuming reset token: %w", err)
	}

	return nil
}

// generateResetToken returns 32 bytes of randomness, hex-encoded.
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
