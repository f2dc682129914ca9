package auth

import (
	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the platform has hashed with since launch.
// Raising it only affects newly stored hashes.
const bcryptCost = 10

// HashPassword generates a bcrypt hash from the given password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return string(hash), nil
}

// ComparePasswordAndHash checks a plaintext password against a stored hash.
// Returns ErrMismatchedHashAndPassword when they do not match.
func ComparePasswordAndHash(password, hash string) error {
	if password == "" {
		return ErrNoEmptyString
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}

	return nil
}
