package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong mirrors bcrypt's 72-byte input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword returns a bcrypt hash of raw at bcrypt.DefaultCost.
func HashPassword(raw string) (string, error) {
	if len(raw) > 72 {
		return "", ErrPasswordTooLong // bcrypt would reject it anyway, keep the error typed
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether raw matches the stored hash.
func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
