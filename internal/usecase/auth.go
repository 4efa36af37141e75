package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/auth-api/internal/auth"
	"github.com/vasapolrittideah/auth-api/internal/config"
	"github.com/vasapolrittideah/auth-api/internal/model"
	"github.com/vasapolrittideah/auth-api/internal/repository"
	"github.com/vasapolrittideah/auth-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates a new user. No session is issued at signup; the user
	// must sign in separately.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// Login verifies credentials, purges default-expired sessions, issues a
	// signed token and records the session.
	Login(ctx context.Context, params LoginParams) (string, error)

	// Authenticate validates a bearer token and returns the user id it names.
	Authenticate(ctx context.Context, token string) (string, error)

	// Logout marks the session holding the token as explicitly expired and
	// returns the expired record.
	Logout(ctx context.Context, userID, token string) (*model.SessionToken, error)

	// LogoutAll expires every session of the user and returns the full list.
	LogoutAll(ctx context.Context, userID string) ([]model.SessionToken, error)

	// ActiveSessions returns the sessions not explicitly logged out.
	ActiveSessions(ctx context.Context, userID string) ([]model.SessionToken, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
	Device   DeviceInfo
}

// DeviceInfo carries informational device metadata recorded on the session.
type DeviceInfo struct {
	Browser string
	OS      string
}

var (
	ErrUserAlreadyExists = errors.New("user already exists with the provided email address")
	ErrUserNotFound      = errors.New("user not found with the provided email address")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrTokenMissing      = errors.New("token not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrSessionNotFound   = errors.New("session not found")
)

// TokenExpiredError reports an expired credential, carrying the moment it
// expired: the signature expiry for a lapsed token, or the session's
// expired_at for an explicit logout.
type TokenExpiredError struct {
	ExpiredAt time.Time
}

func (e *TokenExpiredError) Error() string {
	return fmt.Sprintf("token expired at %s", e.ExpiredAt)
}

type authUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtAuth     auth.JWTAuthenticator
	tokenCfg    config.TokenConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtAuth:     jwtAuth,
		tokenCfg:    tokenCfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if err := security.ValidatePasswordStrength(params.Password); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}

		return "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", err
	} else if !ok {
		return "", ErrInvalidPassword
	}

	now := time.Now()

	// Lazy cleanup: sessions whose default TTL lapsed without an explicit
	// logout are dropped at the next login, not on a timer.
	if err := u.sessionRepo.DeleteDefaultExpired(ctx, user.ID.Hex(), now); err != nil {
		return "", err
	}

	token, err := u.generateToken(user.ID.Hex(), now)
	if err != nil {
		return "", err
	}

	expiresAt := now.Add(u.tokenCfg.TokenExpiresIn)
	err = u.sessionRepo.AddSession(ctx, user.ID.Hex(), model.SessionToken{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
		Browser:   params.Device.Browser,
		OS:        params.Device.OS,
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}

	claims := &auth.SessionClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, u.tokenCfg.Secret, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Claims are decoded before validation, so the signature expiry
			// is available even though validation failed.
			var expiredAt time.Time
			if claims.ExpiresAt != nil {
				expiredAt = claims.ExpiresAt.Time
			}

			return "", &TokenExpiredError{ExpiredAt: expiredAt}
		}

		return "", ErrInvalidToken
	}

	user, err := u.userRepo.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidToken
		}

		return "", err
	}

	// Explicit logout takes priority over a still-valid signature.
	for _, t := range user.Tokens {
		if t.Token == token && t.IsExpired {
			expired := &TokenExpiredError{}
			if t.ExpiredAt != nil {
				expired.ExpiredAt = *t.ExpiredAt
			}

			return "", expired
		}
	}

	return claims.UserID, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID, token string) (*model.SessionToken, error) {
	session, err := u.sessionRepo.ExpireSession(ctx, userID, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return session, nil
}

func (u *authUsecase) LogoutAll(ctx context.Context, userID string) ([]model.SessionToken, error) {
	sessions, err := u.sessionRepo.ExpireAllSessions(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return sessions, nil
}

func (u *authUsecase) ActiveSessions(ctx context.Context, userID string) ([]model.SessionToken, error) {
	sessions, err := u.sessionRepo.ListActiveSessions(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return sessions, nil
}

func (u *authUsecase) generateToken(userID string, now time.Time) (string, error) {
	claims := auth.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenCfg.TokenExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.tokenCfg.Issuer,
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.tokenCfg.Secret)
}
