package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"meridian-api/internal/approval"
	"meridian-api/internal/auth"
	"meridian-api/internal/db"
	"meridian-api/internal/logger"
	"meridian-api/internal/services"
	"meridian-api/internal/verification"
)

// CommonServices holds the shared dependencies used across handlers.
type CommonServices struct {
	queries   db.Querier
	users     *services.UserService
	vaults    *services.VaultService
	transfers *services.TransferService
	approvals *approval.Service
	otp       *verification.OTPService
	passkeys  *verification.PasskeyStrategy
	tokens    *auth.TokenIssuer
	token     services.TokenClient
}

// NewCommonServices creates a new instance of CommonServices.
func NewCommonServices(
	queries db.Querier,
	users *services.UserService,
	vaults *services.VaultService,
	transfers *services.TransferService,
	approvals *approval.Service,
	otp *verification.OTPService,
	passkeys *verification.PasskeyStrategy,
	tokens *auth.TokenIssuer,
	token services.TokenClient,
) *CommonServices {
	return &CommonServices{
		queries:   queries,
		users:     users,
		vaults:    vaults,
		transfers: transfers,
		approvals: approvals,
		otp:       otp,
		passkeys:  passkeys,
		tokens:    tokens,
		token:     token,
	}
}

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response.
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// sendError logs the error and sends a JSON error response.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleDBError maps database errors to HTTP status codes.
func handleDBError(c *gin.Context, err error, notFoundMsg string) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		sendError(c, http.StatusNotFound, notFoundMsg, err)
	case errors.Is(err, services.ErrVaultAccessDenied):
		sendError(c, http.StatusForbidden, "Access denied", err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// sendSuccess sends a success response with the given payload.
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage sends a plain success message.
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList sends a list response.
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(c *gin.Context) (db.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		c.Abort()
	}
	return user, ok
}
