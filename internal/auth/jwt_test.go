package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionClaims(userID string, expiresIn time.Duration) SessionClaims {
	now := time.Now()
	return SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "auth-api",
		},
	}
}

func TestGenerateAndValidate(t *testing.T) {
	a := NewJWTAuthenticator("auth-api")

	token, err := a.GenerateToken(sessionClaims("user-123", time.Hour), "secret")
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = a.ValidateTokenWithClaims(token, "secret", claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidate_Expired(t *testing.T) {
	a := NewJWTAuthenticator("auth-api")

	token, err := a.GenerateToken(sessionClaims("u1", -time.Minute), "secret")
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = a.ValidateTokenWithClaims(token, "secret", claims)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	// Claims are decoded before validation runs, so the expiry survives the
	// failure for error reporting.
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(-time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidate_WrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("auth-api")

	token, err := a.GenerateToken(sessionClaims("u2", time.Hour), "right-secret")
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, "wrong-secret", &SessionClaims{})
	assert.Error(t, err)
}

func TestValidate_WrongIssuer(t *testing.T) {
	issued := NewJWTAuthenticator("someone-else")
	token, err := issued.GenerateToken(SessionClaims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}, "secret")
	require.NoError(t, err)

	a := NewJWTAuthenticator("auth-api")
	_, err = a.ValidateTokenWithClaims(token, "secret", &SessionClaims{})
	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	a := NewJWTAuthenticator("auth-api")

	_, err := a.ValidateTokenWithClaims("not.a.jwt", "secret", &SessionClaims{})
	assert.Error(t, err)
}

func TestValidate_MissingExpiry(t *testing.T) {
	a := NewJWTAuthenticator("auth-api")

	token, err := a.GenerateToken(SessionClaims{
		UserID: "u4",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "auth-api",
		},
	}, "secret")
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, "secret", &SessionClaims{})
	assert.Error(t, err)
}
