package secrets

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
)

// Cost is the bcrypt work factor for admin passwords.
const Cost = 12

// Hash creates a bcrypt hash of the provided password.
func Hash(password string) (string, error) {
	return HashWithCost(password, Cost)
}

// HashWithCost is Hash with an explicit work factor. Tests use bcrypt.MinCost.
func HashWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "Password is too long.")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks if a plaintext password matches a bcrypt hash.
func Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid password")
		}
		return fmt.Errorf("could not verify password: %w", err)
	}
	return nil
}
