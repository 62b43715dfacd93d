package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty string is handed to the hasher.
var ErrEmptyPassword = errors.New("password must not be empty")

// hashCost matches bcrypt's default of 10 rounds.
const hashCost = bcrypt.DefaultCost

// HashPassword derives a salted bcrypt hash from a plaintext password.
// Hashing the empty string is always a caller bug, so it fails loudly
// instead of producing a valid hash of nothing.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. bcrypt's comparison is constant-time internally.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
