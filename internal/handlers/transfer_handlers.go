package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meridian-api/internal/services"
)

// TransferHandler runs outbound transfers through the approval engine.
type TransferHandler struct {
	common *CommonServices
}

func NewTransferHandler(common *CommonServices) *TransferHandler {
	return &TransferHandler{common: common}
}

// Create submits a transfer attempt. The response carries the approval
// decision; callers resubmit with additional proof until approved or
// blocked.
func (h *TransferHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req services.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.common.transfers.CreateTransfer(c.Request.Context(), user, req, c.ClientIP())
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}

	status := http.StatusOK
	if result.Transfer != nil && result.Transfer.Status == services.TransferStatusSubmitted {
		status = http.StatusCreated
	}
	sendSuccess(c, status, result)
}

// Get returns a single transfer.
func (h *TransferHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	transferID, err := uuid.Parse(c.Param("transfer_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid transfer ID", err)
		return
	}

	transfer, err := h.common.transfers.GetTransfer(c.Request.Context(), user.ID, transferID)
	if err != nil {
		handleDBError(c, err, "Transfer not found")
		return
	}
	sendSuccess(c, http.StatusOK, services.ToTransferResponse(transfer))
}

// ListByVault returns a vault's transfer history.
func (h *TransferHandler) ListByVault(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	vaultID, err := uuid.Parse(c.Param("vault_id"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid vault ID", err)
		return
	}

	transfers, err := h.common.transfers.ListTransfers(c.Request.Context(), user.ID, vaultID)
	if err != nil {
		handleDBError(c, err, "Vault not found")
		return
	}

	responses := make([]services.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		responses = append(responses, services.ToTransferResponse(transfer))
	}
	sendList(c, responses)
}
