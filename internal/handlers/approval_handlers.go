package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"meridian-api/internal/approval"
	"meridian-api/internal/db"
)

// ApprovalHandler exposes the risk tier table and the compliance
// review workflow.
type ApprovalHandler struct {
	common *CommonServices
}

func NewApprovalHandler(common *CommonServices) *ApprovalHandler {
	return &ApprovalHandler{common: common}
}

// ClassifyResponse reports the tier an amount falls into.
type ClassifyResponse struct {
	Amount    string `json:"amount"`
	RiskLevel string `json:"risk_level"`
}

// SubmitReviewRequest carries a compliance reviewer's decision.
type SubmitReviewRequest struct {
	VaultAddress string `json:"vault_address" binding:"required"`
	Approved     *bool  `json:"approved" binding:"required"`
	Notes        string `json:"notes"`
}

// ProcessApprovalRequest is a transfer intent submitted for an approval
// decision, with whatever verification proof this attempt carries.
type ProcessApprovalRequest struct {
	VaultID   string `json:"vault_id" binding:"required"`
	ToAddress string `json:"to_address" binding:"required"`
	Amount    string `json:"amount" binding:"required"`

	DeviceFingerprint string             `json:"device_fingerprint,omitempty"`
	UserLocation      *approval.GeoPoint `json:"user_location,omitempty"`

	PasswordVerified bool   `json:"password_verified"`
	PasskeyVerified  bool   `json:"passkey_verified"`
	OTPCode          string `json:"otp_code,omitempty"`
	ManualApproved   bool   `json:"manual_approved"`
}

// ListTiers returns display metadata for every risk tier.
func (h *ApprovalHandler) ListTiers(c *gin.Context) {
	sendList(c, h.common.approvals.DescribeTiers())
}

// GetTier returns display metadata for a single risk tier by name.
func (h *ApprovalHandler) GetTier(c *gin.Context) {
	tier, err := approval.ParseTier(c.Param("level"))
	if err != nil {
		sendError(c, http.StatusNotFound, "Unknown risk tier", err)
		return
	}

	info, err := h.common.approvals.DescribeTier(tier)
	if err != nil {
		sendError(c, http.StatusNotFound, "Unknown risk tier", err)
		return
	}
	sendSuccess(c, http.StatusOK, info)
}

// Process runs the approval engine against a transfer intent and
// returns the decision without executing or persisting a transfer.
// Approved decisions count against the vault's daily and velocity
// allowances like any other approval.
func (h *ApprovalHandler) Process(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req ProcessApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	vaultID, err := uuid.Parse(req.VaultID)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}
	vault, err := h.common.vaults.GetVault(c.Request.Context(), user.ID, vaultID)
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		sendError(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	country := ""
	if user.Country.Valid {
		country = user.Country.String
	}

	decision := h.common.approvals.ProcessApproval(c.Request.Context(), approval.Request{
		Amount:            amount,
		FromAddress:       vault.Address,
		ToAddress:         req.ToAddress,
		UserCountry:       country,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         c.ClientIP(),
		UserLocation:      req.UserLocation,
		PasswordVerified:  req.PasswordVerified,
		PasskeyVerified:   req.PasskeyVerified,
		OTPCode:           req.OTPCode,
		ManualApproved:    req.ManualApproved,
	})
	sendSuccess(c, http.StatusOK, decision)
}

// Classify maps an amount to its risk tier without evaluating policy.
func (h *ApprovalHandler) Classify(c *gin.Context) {
	raw := c.Query("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		sendError(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	tier := h.common.approvals.Classify(amount)
	sendSuccess(c, http.StatusOK, ClassifyResponse{
		Amount:    amount.String(),
		RiskLevel: tier.String(),
	})
}

// SubmitReview records a compliance reviewer's decision for a vault.
// Reviewer only. The decision is persisted and applied to the live
// approval engine.
func (h *ApprovalHandler) SubmitReview(c *gin.Context) {
	reviewer, ok := requireUser(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	review, err := h.common.queries.CreateComplianceReview(c.Request.Context(), db.CreateComplianceReviewParams{
		VaultAddress: req.VaultAddress,
		Approved:     *req.Approved,
		Reviewer:     reviewer.Email,
		Notes:        pgtype.Text{String: req.Notes, Valid: req.Notes != ""},
	})
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to record review", err)
		return
	}

	h.common.approvals.SubmitComplianceReview(req.VaultAddress, reviewer.Email, *req.Approved)

	sendSuccess(c, http.StatusCreated, gin.H{
		"id":            review.ID.String(),
		"vault_address": review.VaultAddress,
		"approved":      review.Approved,
		"reviewer":      review.Reviewer,
	})
}

// GetLatestReview returns the most recent review for a vault address.
func (h *ApprovalHandler) GetLatestReview(c *gin.Context) {
	address := c.Param("address")
	review, err := h.common.queries.GetLatestComplianceReview(c.Request.Context(), address)
	if err != nil {
		handleDBError(c, err, "No review found for address")
		return
	}

	notes := ""
	if review.Notes.Valid {
		notes = review.Notes.String
	}
	sendSuccess(c, http.StatusOK, gin.H{
		"id":            review.ID.String(),
		"vault_address": review.VaultAddress,
		"approved":      review.Approved,
		"reviewer":      review.Reviewer,
		"notes":         notes,
	})
}
