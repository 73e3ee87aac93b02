package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"meridian-api/internal/db"
	"meridian-api/internal/verification"
)

// PasskeyHandler manages passkey credentials and authentication
// ceremonies.
type PasskeyHandler struct {
	common *CommonServices
}

func NewPasskeyHandler(common *CommonServices) *PasskeyHandler {
	return &PasskeyHandler{common: common}
}

// RegisterPasskeyRequest carries a new credential's public parts.
type RegisterPasskeyRequest struct {
	CredentialID string   `json:"credential_id" binding:"required"`
	PublicKey    string   `json:"public_key" binding:"required"`
	Transports   []string `json:"transports"`
	Nickname     string   `json:"nickname"`
}

// PasskeyResponse is the public view of a stored credential.
type PasskeyResponse struct {
	ID           string   `json:"id"`
	CredentialID string   `json:"credential_id"`
	Transports   []string `json:"transports,omitempty"`
	Nickname     string   `json:"nickname,omitempty"`
}

// Register stores a new passkey credential for the authenticated user.
func (h *PasskeyHandler) Register(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req RegisterPasskeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	publicKey, err := base64.RawURLEncoding.DecodeString(req.PublicKey)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Public key must be base64url encoded", err)
		return
	}

	credential, err := h.common.queries.CreatePasskeyCredential(c.Request.Context(), db.CreatePasskeyCredentialParams{
		UserID:       user.ID,
		CredentialID: req.CredentialID,
		PublicKey:    publicKey,
		SignCount:    0,
		Transports:   req.Transports,
		Nickname:     pgtype.Text{String: req.Nickname, Valid: req.Nickname != ""},
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to register passkey", err)
		return
	}

	sendSuccess(c, http.StatusCreated, toPasskeyResponse(credential))
}

// List returns the authenticated user's passkeys.
func (h *PasskeyHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	credentials, err := h.common.queries.ListPasskeyCredentialsByUser(c.Request.Context(), user.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list passkeys", err)
		return
	}

	responses := make([]PasskeyResponse, 0, len(credentials))
	for _, credential := range credentials {
		responses = append(responses, toPasskeyResponse(credential))
	}
	sendList(c, responses)
}

// Delete removes one of the user's passkeys.
func (h *PasskeyHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("passkey_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid passkey ID", err)
		return
	}

	if err := h.common.queries.DeletePasskeyCredential(c.Request.Context(), db.DeletePasskeyCredentialParams{
		ID:     id,
		UserID: user.ID,
	}); err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to delete passkey", err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "Passkey deleted")
}

// BeginAuthentication issues a challenge for a passkey ceremony.
func (h *PasskeyHandler) BeginAuthentication(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	challenge, err := h.common.passkeys.BeginAuthentication(c.Request.Context(), user.ID)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to begin passkey authentication", err)
		return
	}
	sendSuccess(c, http.StatusOK, challenge)
}

// CompleteAuthentication validates the assertion for the outstanding
// challenge.
func (h *PasskeyHandler) CompleteAuthentication(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req verification.AssertionResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	verified, err := h.common.passkeys.CompleteAuthentication(c.Request.Context(), user.ID, req)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Passkey authentication failed", err)
		return
	}
	if !verified {
		sendError(c, http.StatusUnauthorized, "Passkey assertion rejected", nil)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"verified": true})
}

func toPasskeyResponse(credential db.PasskeyCredential) PasskeyResponse {
	resp := PasskeyResponse{
		ID:           credential.ID.String(),
		CredentialID: credential.CredentialID,
		Transports:   credential.Transports,
	}
	if credential.Nickname.Valid {
		resp.Nickname = credential.Nickname.String
	}
	return resp
}
