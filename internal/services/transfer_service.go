package services

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"meridian-api/internal/approval"
	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

// Transfer statuses.
const (
	TransferStatusSubmitted = "submitted"
	TransferStatusBlocked   = "blocked"
	TransferStatusFailed    = "failed"
)

// TokenClient broadcasts signed token transfers and reads balances.
// Satisfied by the USDC RPC client.
type TokenClient interface {
	Transfer(ctx context.Context, key *ecdsa.PrivateKey, to string, amount decimal.Decimal) (string, error)
	BalanceOf(ctx context.Context, address string) (decimal.Decimal, error)
}

// BlockedNotifier tells a vault owner that a transfer was stopped by
// policy. Satisfied by the email service.
type BlockedNotifier interface {
	SendTransferBlockedEmail(ctx context.Context, toEmail, amount, reason string) error
}

// TransferService runs outbound transfers through the approval engine
// and, once approved, signs and broadcasts them.
type TransferService struct {
	queries  db.Querier
	vaults   *VaultService
	approval *approval.Service
	token    TokenClient
	notifier BlockedNotifier
	logger   *zap.Logger
}

func NewTransferService(queries db.Querier, vaults *VaultService, approvalSvc *approval.Service, token TokenClient, notifier BlockedNotifier) *TransferService {
	return &TransferService{
		queries:  queries,
		vaults:   vaults,
		approval: approvalSvc,
		token:    token,
		notifier: notifier,
		logger:   logger.Log,
	}
}

// CreateTransferRequest is the caller's transfer intent plus whatever
// verification proof this attempt carries.
type CreateTransferRequest struct {
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

// TransferResult pairs the approval decision with the persisted
// transfer row, when one was written. Attempts still awaiting a
// verification factor are not persisted.
type TransferResult struct {
	Approval approval.Response `json:"approval"`
	Transfer *TransferResponse `json:"transfer,omitempty"`
}

// TransferResponse is the public view of a transfer record.
type TransferResponse struct {
	ID          string `json:"id"`
	VaultID     string `json:"vault_id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Amount      string `json:"amount"`
	RiskLevel   string `json:"risk_level"`
	Status      string `json:"status"`
	TxHash      string `json:"tx_hash,omitempty"`
	BlockReason string `json:"block_reason,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// CreateTransfer runs the approval gate and executes the transfer when
// it passes. ipAddress comes from the HTTP layer, not the payload.
func (s *TransferService) CreateTransfer(ctx context.Context, user db.User, req CreateTransferRequest, ipAddress string) (*TransferResult, error) {
	vaultID, err := uuid.Parse(req.VaultID)
	if err != nil {
		return nil, fmt.Errorf("invalid vault id: %w", err)
	}
	vault, err := s.vaults.GetVault(ctx, user.ID, vaultID)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("invalid transfer amount %q", req.Amount)
	}

	country := ""
	if user.Country.Valid {
		country = user.Country.String
	}

	decision := s.approval.ProcessApproval(ctx, approval.Request{
		Amount:            amount,
		FromAddress:       vault.Address,
		ToAddress:         req.ToAddress,
		UserCountry:       country,
		DeviceFingerprint: req.DeviceFingerprint,
		IPAddress:         ipAddress,
		UserLocation:      req.UserLocation,
		PasswordVerified:  req.PasswordVerified,
		PasskeyVerified:   req.PasskeyVerified,
		OTPCode:           req.OTPCode,
		ManualApproved:    req.ManualApproved,
	})

	result := &TransferResult{Approval: decision}

	if decision.Blocked {
		row, err := s.queries.CreateTransfer(ctx, db.CreateTransferParams{
			VaultID:     vault.ID,
			FromAddress: vault.Address,
			ToAddress:   req.ToAddress,
			Amount:      numericFromDecimal(amount),
			RiskLevel:   decision.RiskLevel,
			Status:      TransferStatusBlocked,
			BlockReason: pgtype.Text{String: decision.BlockReason, Valid: true},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record blocked transfer: %w", err)
		}
		if s.notifier != nil {
			if err := s.notifier.SendTransferBlockedEmail(ctx, user.Email, amount.String(), decision.BlockReason); err != nil {
				// Notification is best effort; the block itself stands.
				s.logger.Warn("failed to send blocked-transfer notification",
					zap.String("vault_id", vault.ID.String()), zap.Error(err))
			}
		}
		resp := ToTransferResponse(row)
		result.Transfer = &resp
		return result, nil
	}

	if !decision.Approved {
		// A verification factor is still outstanding; nothing to
		// persist until the caller resubmits with proof.
		return result, nil
	}

	row, err := s.execute(ctx, vault, req.ToAddress, amount, decision.RiskLevel)
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(row)
	result.Transfer = &resp
	return result, nil
}

// execute signs and broadcasts an approved transfer. Broadcast failure
// is recorded as a failed transfer row, not an HTTP error.
func (s *TransferService) execute(ctx context.Context, vault db.Vault, toAddress string, amount decimal.Decimal, riskLevel string) (db.Transfer, error) {
	row, err := s.queries.CreateTransfer(ctx, db.CreateTransferParams{
		VaultID:     vault.ID,
		FromAddress: vault.Address,
		ToAddress:   toAddress,
		Amount:      numericFromDecimal(amount),
		RiskLevel:   riskLevel,
		Status:      TransferStatusSubmitted,
	})
	if err != nil {
		return db.Transfer{}, fmt.Errorf("failed to record transfer: %w", err)
	}

	key, err := s.vaults.SigningKey(vault)
	if err != nil {
		return s.markFailed(ctx, row, err)
	}

	txHash, err := s.token.Transfer(ctx, key, toAddress, amount)
	if err != nil {
		s.logger.Error("transfer broadcast failed",
			zap.String("transfer_id", row.ID.String()),
			zap.String("vault_id", vault.ID.String()),
			zap.Error(err))
		return s.markFailed(ctx, row, err)
	}

	updated, err := s.queries.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
		ID:     row.ID,
		Status: TransferStatusSubmitted,
		TxHash: pgtype.Text{String: txHash, Valid: true},
	})
	if err != nil {
		return db.Transfer{}, fmt.Errorf("failed to record tx hash: %w", err)
	}

	s.logger.Info("transfer submitted",
		zap.String("transfer_id", updated.ID.String()),
		zap.String("tx_hash", txHash),
		zap.String("amount", amount.String()))
	return updated, nil
}

func (s *TransferService) markFailed(ctx context.Context, row db.Transfer, cause error) (db.Transfer, error) {
	updated, err := s.queries.UpdateTransferStatus(ctx, db.UpdateTransferStatusParams{
		ID:          row.ID,
		Status:      TransferStatusFailed,
		BlockReason: pgtype.Text{String: cause.Error(), Valid: true},
	})
	if err != nil {
		return db.Transfer{}, fmt.Errorf("failed to mark transfer failed: %w", err)
	}
	return updated, nil
}

// GetTransfer loads a transfer, enforcing vault ownership.
func (s *TransferService) GetTransfer(ctx context.Context, userID, transferID uuid.UUID) (db.Transfer, error) {
	row, err := s.queries.GetTransfer(ctx, transferID)
	if err != nil {
		return db.Transfer{}, err
	}
	if _, err := s.vaults.GetVault(ctx, userID, row.VaultID); err != nil {
		return db.Transfer{}, err
	}
	return row, nil
}

// ListTransfers returns the vault's transfer history, newest first.
func (s *TransferService) ListTransfers(ctx context.Context, userID, vaultID uuid.UUID) ([]db.Transfer, error) {
	if _, err := s.vaults.GetVault(ctx, userID, vaultID); err != nil {
		return nil, err
	}
	return s.queries.ListTransfersByVault(ctx, vaultID)
}

func numericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func decimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// ToTransferResponse converts a db row to the public representation.
func ToTransferResponse(row db.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:          row.ID.String(),
		VaultID:     row.VaultID.String(),
		FromAddress: row.FromAddress,
		ToAddress:   row.ToAddress,
		Amount:      decimalFromNumeric(row.Amount).String(),
		RiskLevel:   row.RiskLevel,
		Status:      row.Status,
	}
	if row.TxHash.Valid {
		resp.TxHash = row.TxHash.String
	}
	if row.BlockReason.Valid {
		resp.BlockReason = row.BlockReason.String
	}
	if row.CreatedAt.Valid {
		resp.CreatedAt = row.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}
