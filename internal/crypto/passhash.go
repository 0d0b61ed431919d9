// Package crypto implements server-side password hashing and credential format checks.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ekomarov/tasktrack/internal/errs"
)

// Username/password format rules enforced at registration.
const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// VerifyPassword verifies password against a stored bcrypt hash.
func VerifyPassword(password, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}

// ValidateUsername checks length and charset: 3-30 of [A-Za-z0-9_].
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", errs.ErrValidation, usernameMinLen, usernameMaxLen)
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return fmt.Errorf("%w: username may contain only letters, digits and underscores", errs.ErrValidation)
		}
	}
	return nil
}

// ValidatePassword requires at least 8 characters including a letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, passwordMinLen)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain a letter and a digit", errs.ErrValidation)
	}
	return nil
}
