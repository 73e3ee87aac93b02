// Package verification holds the narrow verify-style adapters the
// approval engine and handlers call into: password, passkey and
// emailed one-time codes.
package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"meridian-api/internal/db"
)

// ErrInvalidCredentials is returned when a password does not match the
// stored hash or the user does not exist. Callers get the same error
// in both cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordStrategy verifies a plaintext password against the stored
// bcrypt hash.
type PasswordStrategy struct {
	queries db.Querier
}

func NewPasswordStrategy(queries db.Querier) *PasswordStrategy {
	return &PasswordStrategy{queries: queries}
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks the plaintext password for the user identified by
// email. Returns ErrInvalidCredentials for unknown users and wrong
// passwords alike.
func (s *PasswordStrategy) Verify(ctx context.Context, email, plaintext string) (db.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.User{}, ErrInvalidCredentials
		}
		return db.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) != nil {
		return db.User{}, ErrInvalidCredentials
	}
	return user, nil
}
