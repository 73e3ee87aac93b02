package services

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"meridian-api/internal/db"
	"meridian-api/internal/logger"
)

// ErrVaultAccessDenied is returned when a vault does not belong to the
// requesting user.
var ErrVaultAccessDenied = errors.New("vault does not belong to user")

// VaultService manages custodial vaults. Private keys are generated
// server side and stored encrypted under the service master key; they
// never leave this package unencrypted.
type VaultService struct {
	queries   db.Querier
	masterKey []byte
	logger    *zap.Logger
}

// NewVaultService creates the vault service. masterKeyHex must decode
// to 32 bytes (AES-256).
func NewVaultService(queries db.Querier, masterKeyHex string) (*VaultService, error) {
	key, err := hex.DecodeString(masterKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid vault master key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("vault master key must be 32 bytes, got %d", len(key))
	}
	return &VaultService{
		queries:   queries,
		masterKey: key,
		logger:    logger.Log,
	}, nil
}

// CreateVaultRequest carries the vault creation payload.
type CreateVaultRequest struct {
	Name    string `json:"name" binding:"required"`
	ChainID int64  `json:"chain_id" binding:"required"`
}

// VaultResponse is the public view of a vault. The encrypted key is
// never exposed.
type VaultResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	ChainID int64  `json:"chain_id"`
}

// CreateVault generates a fresh keypair, encrypts the private key and
// stores the vault.
func (s *VaultService) CreateVault(ctx context.Context, userID uuid.UUID, req CreateVaultRequest) (db.Vault, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return db.Vault{}, fmt.Errorf("failed to generate vault key: %w", err)
	}
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	encrypted, err := s.encryptKey(crypto.FromECDSA(key))
	if err != nil {
		return db.Vault{}, fmt.Errorf("failed to encrypt vault key: %w", err)
	}

	vault, err := s.queries.CreateVault(ctx, db.CreateVaultParams{
		UserID:       userID,
		Name:         req.Name,
		Address:      address,
		EncryptedKey: encrypted,
		ChainID:      req.ChainID,
	})
	if err != nil {
		return db.Vault{}, fmt.Errorf("failed to create vault: %w", err)
	}

	s.logger.Info("vault created",
		zap.String("vault_id", vault.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("address", address))
	return vault, nil
}

// GetVault loads a vault, enforcing ownership.
func (s *VaultService) GetVault(ctx context.Context, userID, vaultID uuid.UUID) (db.Vault, error) {
	vault, err := s.queries.GetVault(ctx, vaultID)
	if err != nil {
		return db.Vault{}, err
	}
	if vault.UserID != userID {
		return db.Vault{}, ErrVaultAccessDenied
	}
	return vault, nil
}

// ListVaults returns all vaults owned by the user.
func (s *VaultService) ListVaults(ctx context.Context, userID uuid.UUID) ([]db.Vault, error) {
	return s.queries.ListVaultsByUser(ctx, userID)
}

// DeleteVault removes a vault after checking ownership.
func (s *VaultService) DeleteVault(ctx context.Context, userID, vaultID uuid.UUID) error {
	if _, err := s.GetVault(ctx, userID, vaultID); err != nil {
		return err
	}
	return s.queries.DeleteVault(ctx, vaultID)
}

// AddressQRCode renders the vault's deposit address as a PNG QR code.
func (s *VaultService) AddressQRCode(ctx context.Context, userID, vaultID uuid.UUID) ([]byte, error) {
	vault, err := s.GetVault(ctx, userID, vaultID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(vault.Address, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// SigningKey decrypts the vault's private key for transaction signing.
// Callers must not retain the returned key.
func (s *VaultService) SigningKey(vault db.Vault) (*ecdsa.PrivateKey, error) {
	raw, err := s.decryptKey(vault.EncryptedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt vault key: %w", err)
	}
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vault key: %w", err)
	}
	return key, nil
}

// encryptKey seals the key with AES-256-GCM, nonce prepended.
func (s *VaultService) encryptKey(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *VaultService) decryptKey(sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed key too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// ToVaultResponse converts a db row to the public representation.
func ToVaultResponse(vault db.Vault) VaultResponse {
	return VaultResponse{
		ID:      vault.ID.String(),
		Name:    vault.Name,
		Address: vault.Address,
		ChainID: vault.ChainID,
	}
}
