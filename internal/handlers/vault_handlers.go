package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meridian-api/internal/services"
)

// VaultHandler manages custodial vault operations.
type VaultHandler struct {
	common *CommonServices
}

func NewVaultHandler(common *CommonServices) *VaultHandler {
	return &VaultHandler{common: common}
}

// Create generates a new vault with a server-side keypair.
func (h *VaultHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CreateVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	vault, err := h.common.vaults.CreateVault(c.Request.Context(), user.ID, req)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to create vault", err)
		return
	}
	sendSuccess(c, http.StatusCreated, services.ToVaultResponse(vault))
}

// Get returns a single vault owned by the user.
func (h *VaultHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(c.Param("vault_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}

	vault, err := h.common.vaults.GetVault(c.Request.Context(), user.ID, vaultID)
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}
	sendSuccess(c, http.StatusOK, services.ToVaultResponse(vault))
}

// List returns all vaults owned by the user.
func (h *VaultHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaults, err := h.common.vaults.ListVaults(c.Request.Context(), user.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list vaults", err)
		return
	}

	responses := make([]services.VaultResponse, 0, len(vaults))
	for _, vault := range vaults {
		responses = append(responses, services.ToVaultResponse(vault))
	}
	sendList(c, responses)
}

// Delete removes a vault owned by the user.
func (h *VaultHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(c.Param("vault_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}

	if err := h.common.vaults.DeleteVault(c.Request.Context(), user.ID, vaultID); err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}
	sendSuccessMessage(c, http.StatusOK, "Vault deleted")
}

// Balance reads the vault's on-chain USDC balance.
func (h *VaultHandler) Balance(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(c.Param("vault_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}

	vault, err := h.common.vaults.GetVault(c.Request.Context(), user.ID, vaultID)
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}

	balance, err := h.common.token.BalanceOf(c.Request.Context(), vault.Address)
	if err != nil {
		sendError(c, http.StatusBadGateway, "Failed to read vault balance", err)
		return
	}

	sendSuccess(c, http.StatusOK, gin.H{
		"vault_id": vault.ID.String(),
		"address":  vault.Address,
		"balance":  balance.String(),
		"token":    "USDC",
	})
}

// AddressQRCode renders the vault deposit address as a PNG QR code.
func (h *VaultHandler) AddressQRCode(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(c.Param("vault_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}

	png, err := h.common.vaults.AddressQRCode(c.Request.Context(), user.ID, vaultID)
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
