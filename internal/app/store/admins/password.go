// internal/app/store/admins/password.go
package admins

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the login form's client-side rule.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned when hashing a password below the minimum.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
