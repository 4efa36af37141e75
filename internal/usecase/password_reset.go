package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/auth-api/internal/config"
	"github.com/vasapolrittideah/auth-api/internal/notifier"
	"github.com/vasapolrittideah/auth-api/internal/repository"
	"github.com/vasapolrittideah/auth-api/internal/security"
)

// PasswordResetUsecase defines the business logic for password reset operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a single-use reset token for the user and
	// dispatches a reset link out of band. The token never appears in the
	// caller-facing response.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPasswordWithToken consumes an outstanding reset token and sets the
	// new password atomically.
	ResetPasswordWithToken(ctx context.Context, token, newPassword string) error

	// ChangePassword changes the password of an authenticated user after
	// verifying the old one.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

var (
	ErrInvalidOrExpiredResetToken = errors.New(
		"invalid or expired reset password link, please request again to send a reset link")
	ErrInvalidOldPassword = errors.New("invalid old password")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	notifier notifier.Notifier
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	notifier notifier.Notifier,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	// Overwrites any outstanding token; the prior link stops working even if
	// it had time left.
	expiresAt := time.Now().Add(u.cfg.Token.PasswordResetExpires)
	if err := u.userRepo.SetResetPasswordToken(ctx, user.Email, token, expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/user/reset-password/%s", u.cfg.AppBaseURL, token)

	return u.notifier.SendPasswordResetLink(ctx, user.Email, resetLink)
}

func (u *passwordResetUsecase) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	if err := security.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.ConsumeResetPasswordToken(ctx, token, passwordHash); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOrExpiredResetToken
		}

		return err
	}

	return nil
}

func (u *passwordResetUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := security.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if ok, err := security.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrInvalidOldPassword
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		return err
	}

	return nil
}

// generateResetToken returns a cryptographically random opaque token.
func generateResetToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
