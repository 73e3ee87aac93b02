package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meridian-api/internal/services"
	"meridian-api/internal/verification"
)

// UserHandler handles registration, login and profile operations.
type UserHandler struct {
	common *CommonServices
}

func NewUserHandler(common *CommonServices) *UserHandler {
	return &UserHandler{common: common}
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse carries a freshly issued session token.
type SessionResponse struct {
	Token string                `json:"token"`
	User  services.UserResponse `json:"user"`
}

// Register creates a new user account.
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.common.users.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			sendError(c, http.StatusConflict, "Email already registered", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	sendSuccess(c, http.StatusCreated, services.ToUserResponse(user))
}

// Login verifies credentials and issues a session token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.common.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, verification.ErrInvalidCredentials) {
			sendError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to log in", err)
		return
	}

	token, err := h.common.tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to issue session", err)
		return
	}

	sendSuccess(c, http.StatusOK, SessionResponse{
		Token: token,
		User:  services.ToUserResponse(user),
	})
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	sendSuccess(c, http.StatusOK, services.ToUserResponse(user))
}

// UpdateMe updates the authenticated user's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.common.users.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		handleDBError(c, err, "User not found")
		return
	}
	sendSuccess(c, http.StatusOK, services.ToUserResponse(updated))
}
