package verification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meridian-api/internal/db/mocks"
	"meridian-api/internal/logger"
	"meridian-api/internal/verification"

	"meridian-api/internal/db"
)

func init() {
	logger.InitLogger()
}

func TestPasswordStrategy_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mocks.NewMockQuerier(ctrl)
	strategy := verification.NewPasswordStrategy(mockQuerier)
	ctx := context.Background()

	hash, err := verification.HashPassword("correct horse battery")
	require.NoError(t, err)
	user := db.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         "user",
	}

	t.Run("valid credentials", func(t *testing.T) {
		mockQuerier.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(user, nil)

		got, err := strategy.Verify(ctx, "alice@example.com", "correct horse battery")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockQuerier.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(user, nil)

		_, err := strategy.Verify(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, verification.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		mockQuerier.EXPECT().GetUserByEmail(ctx, "nobody@example.com").Return(db.User{}, pgx.ErrNoRows)

		_, err := strategy.Verify(ctx, "nobody@example.com", "anything")
		assert.ErrorIs(t, err, verification.ErrInvalidCredentials)
	})

	t.Run("database error is not masked", func(t *testing.T) {
		mockQuerier.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(db.User{}, errors.New("connection refused"))

		_, err := strategy.Verify(ctx, "alice@example.com", "correct horse battery")
		require.Error(t, err)
		assert.NotErrorIs(t, err, verification.ErrInvalidCredentials)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := verification.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	// Hashes are salted, so hashing twice differs.
	hash2, err := verification.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
