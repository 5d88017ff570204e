package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when an email/password pair does not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword returns the bcrypt hash of p
func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	return string(b), err
}

// ComparePassword returns ErrInvalidCredentials when pw does not match hash
func ComparePassword(hash, pw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
