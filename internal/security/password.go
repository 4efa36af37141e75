package security

import (
	"errors"
	"strings"

	"github.com/matthewhartstonge/argon2"
)

// ErrWeakPassword is returned when a new password does not satisfy the
// strength policy. The message intentionally names the rules only; the
// submitted password must never appear in errors or logs.
var ErrWeakPassword = errors.New(
	"password must be at least 8 characters long and include an uppercase letter, " +
		"a lowercase letter, a number, and a special character (!@#$%^&*)",
)

const passwordSymbols = "!@#$%^&*"

// HashPassword hashes a raw password with argon2id using the library defaults.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()

	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword compares a raw password against an encoded argon2 hash.
// The comparison inside the library is constant-time.
func VerifyPassword(password, passwordHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(passwordHash))
}

// ValidatePasswordStrength enforces the password policy for every new or
// changed password: minimum 8 characters with at least one lowercase letter,
// one uppercase letter, one digit and one symbol from a fixed set.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}

	return nil
}
