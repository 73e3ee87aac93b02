package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
	"meridian-api/internal/verification"
)

// ErrEmailTaken is returned when registering with an address that
// already has an account.
var ErrEmailTaken = errors.New("email already registered")

// UserService manages account registration and profile data.
type UserService struct {
	queries   db.Querier
	passwords *verification.PasswordStrategy
	logger    *zap.Logger
}

func NewUserService(queries db.Querier) *UserService {
	return &UserService{
		queries:   queries,
		passwords: verification.NewPasswordStrategy(queries),
		logger:    logger.Log,
	}
}

// RegisterUserRequest carries the signup payload.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

// UpdateUserRequest carries profile updates.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Country     string `json:"country,omitempty"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

// Register creates a new user account with a hashed password.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (db.User, error) {
	if _, err := s.queries.GetUserByEmail(ctx, req.Email); err == nil {
		return db.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return db.User{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := verification.HashPassword(req.Password)
	if err != nil {
		return db.User{}, err
	}

	user, err := s.queries.CreateUser(ctx, db.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  pgtype.Text{String: req.DisplayName, Valid: req.DisplayName != ""},
		Country:      pgtype.Text{String: req.Country, Valid: req.Country != ""},
		Role:         "user",
	})
	if err != nil {
		return db.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return user, nil
}

// Authenticate verifies an email and password pair.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (db.User, error) {
	return s.passwords.Verify(ctx, email, password)
}

// GetUser loads a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (db.User, error) {
	return s.queries.GetUser(ctx, id)
}

// UpdateProfile updates a user's display name and country.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (db.User, error) {
	current, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return db.User{}, err
	}

	displayName := current.DisplayName
	if req.DisplayName != "" {
		displayName = pgtype.Text{String: req.DisplayName, Valid: true}
	}
	country := current.Country
	if req.Country != "" {
		country = pgtype.Text{String: req.Country, Valid: true}
	}

	return s.queries.UpdateUser(ctx, db.UpdateUserParams{
		ID:          id,
		DisplayName: displayName,
		Country:     country,
	})
}

// ToUserResponse converts a db row to the public representation.
func ToUserResponse(user db.User) UserResponse {
	resp := UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}
	if user.DisplayName.Valid {
		resp.DisplayName = user.DisplayName.String
	}
	if user.Country.Valid {
		resp.Country = user.Country.String
	}
	if user.CreatedAt.Valid {
		resp.CreatedAt = user.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
