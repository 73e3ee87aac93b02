package handlers_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"meridian-api/internal/approval"
	"meridian-api/internal/auth"
	"meridian-api/internal/db"
	"meridian-api/internal/db/mocks"
	"meridian-api/internal/handlers"
	"meridian-api/internal/logger"
	"meridian-api/internal/services"
	"meridian-api/internal/verification"
)

func init() {
	logger.InitLogger()
	gin.SetMode(gin.TestMode)
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

type noopMailer struct{}

func (noopMailer) SendOTPEmail(ctx context.Context, toEmail, code string, expiry time.Duration) error {
	return nil
}

type handlerFixture struct {
	router  *gin.Engine
	queries *mocks.MockQuerier
	token   *stubBalanceClient
	user    db.User
	vault   db.Vault
}

// stubBalanceClient fakes the on-chain token client.
type stubBalanceClient struct {
	balance decimal.Decimal
	err     error
}

func (s *stubBalanceClient) Transfer(ctx context.Context, key *ecdsa.PrivateKey, to string, amount decimal.Decimal) (string, error) {
	return "0xstub", s.err
}

func (s *stubBalanceClient) BalanceOf(ctx context.Context, address string) (decimal.Decimal, error) {
	return s.balance, s.err
}

func newHandlerFixture(t *testing.T) *handlerFixture {
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

	token := &stubBalanceClient{balance: decimal.RequireFromString("12.5")}
	approvalService := approval.NewService(passAllCompliance{}, noopSender{})
	userService := services.NewUserService(mockQuerier)
	transferService := services.NewTransferService(mockQuerier, vaultService, approvalService, token, nil)
	otpService := verification.NewOTPService(mockQuerier, noopMailer{})
	passkeyStrategy := verification.NewPasskeyStrategy(mockQuerier, verification.NewECDSAAssertionValidator())
	tokenIssuer := auth.NewTokenIssuer("test-secret", "meridian-api")

	common := handlers.NewCommonServices(
		mockQuerier,
		userService,
		vaultService,
		transferService,
		approvalService,
		otpService,
		passkeyStrategy,
		tokenIssuer,
		token,
	)

	approvalHandler := handlers.NewApprovalHandler(common)
	vaultHandler := handlers.NewVaultHandler(common)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextUserKey, user)
		c.Set(auth.ContextUserIDKey, user.ID)
		c.Set(auth.ContextRoleKey, user.Role)
	})
	router.GET("/api/v1/tiers", approvalHandler.ListTiers)
	router.GET("/api/v1/tiers/:level", approvalHandler.GetTier)
	router.POST("/api/v1/approvals/process", approvalHandler.Process)
	router.GET("/api/v1/vaults/:vault_id/balance", vaultHandler.Balance)

	return &handlerFixture{
		router:  router,
		queries: mockQuerier,
		token:   token,
		user:    user,
		vault:   vault,
	}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestApprovalHandler_ListTiers(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tiers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []approval.TierInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)
	assert.Equal(t, "low", resp.Data[0].Name)
	assert.Equal(t, "extreme", resp.Data[4].Name)
}

func TestApprovalHandler_GetTier(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tiers/extreme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info approval.TierInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "extreme", info.Name)
	assert.Equal(t, "unlimited", info.MaxAmount)
	assert.Contains(t, info.Requirements, "compliance review")

	rec = f.do(t, http.MethodGet, "/api/v1/tiers/critical", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprovalHandler_ProcessLowTier(t *testing.T) {
	f := newHandlerFixture(t)

	f.queries.EXPECT().GetVault(gomock.Any(), f.vault.ID).Return(f.vault, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/approvals/process", gin.H{
		"vault_id":   f.vault.ID.String(),
		"to_address": "0xdef",
		"amount":     "0.50",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var decision approval.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.True(t, decision.Approved)
	assert.True(t, decision.AutoApproved)
	assert.Equal(t, "low", decision.RiskLevel)
}

func TestApprovalHandler_ProcessRequiresFactor(t *testing.T) {
	f := newHandlerFixture(t)

	f.queries.EXPECT().GetVault(gomock.Any(), f.vault.ID).Return(f.vault, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/approvals/process", gin.H{
		"vault_id":   f.vault.ID.String(),
		"to_address": "0xdef",
		"amount":     "2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var decision approval.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.False(t, decision.Approved)
	assert.True(t, decision.RequiresAction)
	assert.True(t, decision.RequiresPassword)
	assert.Equal(t, "medium", decision.RiskLevel)
}

func TestApprovalHandler_ProcessForeignVault(t *testing.T) {
	f := newHandlerFixture(t)

	foreign := f.vault
	foreign.UserID = uuid.New()
	f.queries.EXPECT().GetVault(gomock.Any(), f.vault.ID).Return(foreign, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/approvals/process", gin.H{
		"vault_id":   f.vault.ID.String(),
		"to_address": "0xdef",
		"amount":     "0.50",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVaultHandler_Balance(t *testing.T) {
	f := newHandlerFixture(t)

	f.queries.EXPECT().GetVault(gomock.Any(), f.vault.ID).Return(f.vault, nil)

	rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/vaults/%s/balance", f.vault.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "12.5", resp["balance"])
	assert.Equal(t, f.vault.Address, resp["address"])
	assert.Equal(t, "USDC", resp["token"])
}
