package verification

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

const challengeTTL = 5 * time.Minute

// AssertionValidator verifies a passkey authentication assertion
// against a stored credential. The ceremony cryptography itself is a
// black box behind this interface.
type AssertionValidator interface {
	ValidateAssertion(ctx context.Context, credential db.PasskeyCredential, challenge string, assertion AssertionResponse) (newSignCount int64, err error)
}

// PasskeyChallenge is an outstanding authentication challenge.
type PasskeyChallenge struct {
	Challenge string    `json:"challenge"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AssertionResponse is the authenticator's answer to a challenge.
type AssertionResponse struct {
	CredentialID string `json:"credential_id"`
	ClientData   []byte `json:"client_data"`
	Signature    []byte `json:"signature"`
}

// PasskeyStrategy verifies passkey (WebAuthn) authentication against
// stored credential records. Challenges are held in memory and are
// single use.
type PasskeyStrategy struct {
	queries   db.Querier
	validator AssertionValidator
	logger    *zap.Logger

	mu         sync.Mutex
	challenges map[uuid.UUID]PasskeyChallenge
}

func NewPasskeyStrategy(queries db.Querier, validator AssertionValidator) *PasskeyStrategy {
	return &PasskeyStrategy{
		queries:    queries,
		validator:  validator,
		logger:     logger.Log,
		challenges: make(map[uuid.UUID]PasskeyChallenge),
	}
}

// HasCredentials reports whether the user has at least one registered
// passkey.
func (s *PasskeyStrategy) HasCredentials(ctx context.Context, userID uuid.UUID) (bool, error) {
	count, err := s.queries.CountPasskeyCredentialsByUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to count passkey credentials: %w", err)
	}
	return count > 0, nil
}

// BeginAuthentication issues a fresh challenge for the user. Any prior
// outstanding challenge is replaced.
func (s *PasskeyStrategy) BeginAuthentication(ctx context.Context, userID uuid.UUID) (PasskeyChallenge, error) {
	ok, err := s.HasCredentials(ctx, userID)
	if err != nil {
		return PasskeyChallenge{}, err
	}
	if !ok {
		return PasskeyChallenge{}, errors.New("no passkey registered for user")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return PasskeyChallenge{}, fmt.Errorf("failed to generate challenge: %w", err)
	}
	ch := PasskeyChallenge{
		Challenge: base64.RawURLEncoding.EncodeToString(raw),
		ExpiresAt: time.Now().Add(challengeTTL),
	}

	s.mu.Lock()
	s.challenges[userID] = ch
	s.mu.Unlock()

	return ch, nil
}

// CompleteAuthentication validates the assertion for the outstanding
// challenge, bumps the credential's sign count and consumes the
// challenge.
func (s *PasskeyStrategy) CompleteAuthentication(ctx context.Context, userID uuid.UUID, resp AssertionResponse) (bool, error) {
	s.mu.Lock()
	ch, ok := s.challenges[userID]
	delete(s.challenges, userID)
	s.mu.Unlock()

	if !ok || time.Now().After(ch.ExpiresAt) {
		return false, errors.New("no active passkey challenge")
	}

	credential, err := s.queries.GetPasskeyCredential(ctx, resp.CredentialID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, errors.New("unknown passkey credential")
		}
		return false, fmt.Errorf("failed to load passkey credential: %w", err)
	}
	if credential.UserID != userID {
		return false, errors.New("credential does not belong to user")
	}

	newCount, err := s.validator.ValidateAssertion(ctx, credential, ch.Challenge, resp)
	if err != nil {
		s.logger.Warn("passkey assertion rejected",
			zap.String("user_id", userID.String()), zap.Error(err))
		return false, nil
	}

	if err := s.queries.UpdatePasskeySignCount(ctx, db.UpdatePasskeySignCountParams{
		CredentialID: credential.CredentialID,
		SignCount:    newCount,
	}); err != nil {
		return false, fmt.Errorf("failed to update sign count: %w", err)
	}
	return true, nil
}
