package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meridian-api/internal/db"
	"meridian-api/internal/db/mocks"
	"meridian-api/internal/services"
)

func TestUserService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mocks.NewMockQuerier(ctrl)
	service := services.NewUserService(mockQuerier)
	ctx := context.Background()

	t.Run("successfully registers", func(t *testing.T) {
		mockQuerier.EXPECT().
			GetUserByEmail(ctx, "alice@example.com").
			Return(db.User{}, pgx.ErrNoRows)
		mockQuerier.EXPECT().
			CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, arg db.CreateUserParams) (db.User, error) {
				assert.Equal(t, "alice@example.com", arg.Email)
				assert.NotEqual(t, "longenoughpassword", arg.PasswordHash)
				assert.Equal(t, "user", arg.Role)
				return db.User{
					ID:           uuid.New(),
					Email:        arg.Email,
					PasswordHash: arg.PasswordHash,
					DisplayName:  arg.DisplayName,
					Country:      arg.Country,
					Role:         arg.Role,
				}, nil
			})

		user, err := service.Register(ctx, services.RegisterUserRequest{
			Email:       "alice@example.com",
			Password:    "longenoughpassword",
			DisplayName: "Alice",
			Country:     "US",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.True(t, user.Country.Valid)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		mockQuerier.EXPECT().
			GetUserByEmail(ctx, "alice@example.com").
			Return(db.User{ID: uuid.New(), Email: "alice@example.com"}, nil)

		_, err := service.Register(ctx, services.RegisterUserRequest{
			Email:    "alice@example.com",
			Password: "longenoughpassword",
		})
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQuerier := mocks.NewMockQuerier(ctrl)
	service := services.NewUserService(mockQuerier)
	ctx := context.Background()

	userID := uuid.New()
	current := db.User{
		ID:          userID,
		Email:       "alice@example.com",
		DisplayName: pgtype.Text{String: "Alice", Valid: true},
		Country:     pgtype.Text{String: "US", Valid: true},
	}

	mockQuerier.EXPECT().GetUser(ctx, userID).Return(current, nil)
	mockQuerier.EXPECT().
		UpdateUser(ctx, db.UpdateUserParams{
			ID:          userID,
			DisplayName: pgtype.Text{String: "Alice B", Valid: true},
			Country:     pgtype.Text{String: "US", Valid: true},
		}).
		Return(current, nil)

	// Empty fields keep their current values.
	_, err := service.UpdateProfile(ctx, userID, services.UpdateUserRequest{
		DisplayName: "Alice B",
	})
	assert.NoError(t, err)
}

func TestToUserResponse(t *testing.T) {
	user := db.User{
		ID:      uuid.New(),
		Email:   "alice@example.com",
		Role:    "user",
		Country: pgtype.Text{String: "US", Valid: true},
	}

	resp := services.ToUserResponse(user)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "US", resp.Country)
	assert.Empty(t, resp.DisplayName)
}
