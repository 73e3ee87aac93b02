package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meridian-api/internal/verification"
)

// OTPHandler issues and verifies durable emailed one-time codes.
type OTPHandler struct {
	common *CommonServices
}

func NewOTPHandler(common *CommonServices) *OTPHandler {
	return &OTPHandler{common: common}
}

// VerifyOTPRequest carries a submitted one-time code.
type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// Request issues a fresh one-time code and emails it to the
// authenticated user. Any prior outstanding code is invalidated.
func (h *OTPHandler) Request(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	record, err := h.common.otp.Issue(c.Request.Context(), user, verification.OTPPurposeTransfer)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to issue one-time code", err)
		return
	}

	sendSuccess(c, http.StatusOK, gin.H{
		"message":    "Verification code sent",
		"expires_at": record.ExpiresAt.Time,
	})
}

// Verify checks a submitted code and consumes it on success.
func (h *OTPHandler) Verify(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.common.otp.Verify(c.Request.Context(), user.ID, verification.OTPPurposeTransfer, req.Code)
	if err != nil {
		if errors.Is(err, verification.ErrInvalidOTP) {
			sendError(c, http.StatusUnauthorized, "Invalid or expired code", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to verify code", err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"verified": true})
}
