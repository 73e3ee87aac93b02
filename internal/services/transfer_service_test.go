package services_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meridian-api/internal/approval"
	"meridian-api/internal/db"
	"meridian-api/internal/db/mocks"
	"meridian-api/internal/logger"
	"meridian-api/internal/services"
)

func init() {
	logger.InitLogger()
}

// testMasterKey is 32 bytes of zeros, hex encoded.
const testMasterKey = "0000000000000000000000000000000000000000000000000000000000000000"

type passAllCompliance struct{}

func (passAllCompliance) CheckAddress(ctx context.Context, address string) (bool, error) {
	return true, nil
}

func (passAllCompliance) CheckSanctions(ctx context.Context, fromAddress, toAddress, country string) (bool, error) {
	return true, nil
}

type noopSender struct{}

func (noopSender) SendOTP(ctx context.Context, account, code string, expiry time.Duration) error {
	return nil
}

// stubTokenClient fakes transaction broadcast and balance reads.
type stubTokenClient struct {
	txHash  string
	balance decimal.Decimal
	err     error
}

func (s *stubTokenClient) Transfer(ctx context.Context, key *ecdsa.PrivateKey, to string, amount decimal.Decimal) (string, error) {
	return s.txHash, s.err
}

func (s *stubTokenClient) BalanceOf(ctx context.Context, address string) (decimal.Decimal, error) {
	return s.balance, s.err
}

// recordingNotifier captures blocked-transfer notifications.
type recordingNotifier struct {
	toEmail string
	amount  string
	reason  string
}

func (n *recordingNotifier) SendTransferBlockedEmail(ctx context.Context, toEmail, amount, reason string) error {
	n.toEmail = toEmail
	n.amount = amount
	n.reason = reason
	return nil
}

type transferFixture struct {
	queries   *mocks.MockQuerier
	vaults    *services.VaultService
	transfers *services.TransferService
	token     *stubTokenClient
	notifier  *recordingNotifier
	user      db.User
	vault     db.Vault
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQuerier := mocks.NewMockQuerier(ctrl)

	vaultService, err := services.NewVaultService(mockQuerier, testMasterKey)
	require.NoError(t, err)

	user := db.User{
		ID:      uuid.New(),
		Email:   "alice@example.com",
		Country: pgtype.Text{String: "US", Valid: true},
		Role:    "user",
	}

	// Create a real vault through the service so the encrypted key
	// round-trips through AES-GCM.
	mockQuerier.EXPECT().
		CreateVault(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.CreateVaultParams) (db.Vault, error) {
			return db.Vault{
				ID:           uuid.New(),
				UserID:       arg.UserID,
				Name:         arg.Name,
				Address:      arg.Address,
				EncryptedKey: arg.EncryptedKey,
				ChainID:      arg.ChainID,
			}, nil
		})
	vault, err := vaultService.CreateVault(context.Background(), user.ID, services.CreateVaultRequest{
		Name:    "main",
		ChainID: 1,
	})
	require.NoError(t, err)

	token := &stubTokenClient{txHash: "0xdeadbeef"}
	notifier := &recordingNotifier{}
	approvalService := approval.NewService(passAllCompliance{}, noopSender{})
	transferService := services.NewTransferService(mockQuerier, vaultService, approvalService, token, notifier)

	return &transferFixture{
		queries:   mockQuerier,
		vaults:    vaultService,
		transfers: transferService,
		token:     token,
		notifier:  notifier,
		user:      user,
		vault:     vault,
	}
}

func echoCreateTransfer(f *transferFixture) {
	f.queries.EXPECT().
		CreateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.CreateTransferParams) (db.Transfer, error) {
			return db.Transfer{
				ID:          uuid.New(),
				VaultID:     arg.VaultID,
				FromAddress: arg.FromAddress,
				ToAddress:   arg.ToAddress,
				Amount:      arg.Amount,
				RiskLevel:   arg.RiskLevel,
				Status:      arg.Status,
				BlockReason: arg.BlockReason,
			}, nil
		})
}

func echoUpdateTransferStatus(f *transferFixture) {
	f.queries.EXPECT().
		UpdateTransferStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, arg db.UpdateTransferStatusParams) (db.Transfer, error) {
			return db.Transfer{
				ID:          arg.ID,
				VaultID:     f.vault.ID,
				FromAddress: f.vault.Address,
				Status:      arg.Status,
				TxHash:      arg.TxHash,
				BlockReason: arg.BlockReason,
			}, nil
		})
}

func TestTransferService_LowTierExecutes(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)
	echoCreateTransfer(f)
	echoUpdateTransferStatus(f)

	result, err := f.transfers.CreateTransfer(ctx, f.user, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "0.50",
	}, "1.2.3.4")
	require.NoError(t, err)

	assert.True(t, result.Approval.Approved)
	assert.True(t, result.Approval.AutoApproved)
	require.NotNil(t, result.Transfer)
	assert.Equal(t, services.TransferStatusSubmitted, result.Transfer.Status)
	assert.Equal(t, "0xdeadbeef", result.Transfer.TxHash)
}

func TestTransferService_PendingFactorNotPersisted(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	// Medium tier without password proof: no transfer row is written,
	// so no CreateTransfer expectation is registered.
	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)

	result, err := f.transfers.CreateTransfer(ctx, f.user, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "2",
	}, "1.2.3.4")
	require.NoError(t, err)

	assert.False(t, result.Approval.Approved)
	assert.True(t, result.Approval.RequiresPassword)
	assert.Nil(t, result.Transfer)
}

func TestTransferService_BlockedPersisted(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	f.user.Country = pgtype.Text{String: "KP", Valid: true}

	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)
	echoCreateTransfer(f)

	result, err := f.transfers.CreateTransfer(ctx, f.user, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "10",
	}, "1.2.3.4")
	require.NoError(t, err)

	assert.True(t, result.Approval.Blocked)
	require.NotNil(t, result.Transfer)
	assert.Equal(t, services.TransferStatusBlocked, result.Transfer.Status)
	assert.Contains(t, result.Transfer.BlockReason, "sanctioned country")
	assert.Empty(t, result.Transfer.TxHash)

	// The vault owner is notified about the block.
	assert.Equal(t, f.user.Email, f.notifier.toEmail)
	assert.Equal(t, "10", f.notifier.amount)
	assert.Contains(t, f.notifier.reason, "sanctioned country")
}

func TestTransferService_BroadcastFailureMarksFailed(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()
	f.token.err = errors.New("rpc unavailable")

	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)
	echoCreateTransfer(f)
	echoUpdateTransferStatus(f)

	result, err := f.transfers.CreateTransfer(ctx, f.user, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "0.25",
	}, "1.2.3.4")
	require.NoError(t, err)

	require.NotNil(t, result.Transfer)
	assert.Equal(t, services.TransferStatusFailed, result.Transfer.Status)
	assert.Contains(t, result.Transfer.BlockReason, "rpc unavailable")
}

func TestTransferService_ForeignVaultRejected(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	stranger := db.User{ID: uuid.New(), Country: pgtype.Text{String: "US", Valid: true}}
	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)

	_, err := f.transfers.CreateTransfer(ctx, stranger, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "0.50",
	}, "1.2.3.4")
	assert.ErrorIs(t, err, services.ErrVaultAccessDenied)
}

func TestTransferService_InvalidAmount(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	f.queries.EXPECT().GetVault(ctx, f.vault.ID).Return(f.vault, nil)

	_, err := f.transfers.CreateTransfer(ctx, f.user, services.CreateTransferRequest{
		VaultID:   f.vault.ID.String(),
		ToAddress: "0xdef",
		Amount:    "-1",
	}, "1.2.3.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transfer amount")
}
