package handler

import (
	"github.com/gin-gonic/gin"

	"vault-core/internal/handler/request"
	"vault-core/internal/handler/response"
	"vault-core/internal/service"
	"vault-core/pkg/errno"
	"vault-core/pkg/validator"
)

// VaultHandler exposes transfer and balance operations.
type VaultHandler struct {
	transfers *service.TransferService
	balances  *service.BalanceService
}

func NewVaultHandler(transfers *service.TransferService, balances *service.BalanceService) *VaultHandler {
	return &VaultHandler{transfers: transfers, balances: balances}
}

// Transfer godoc
// @Summary Submit an outgoing transfer
// @Description Evaluates the security policy, encodes the amount and submits withdraw_by_hot
// @Tags vault
// @Accept json
// @Produce json
// @Param request body request.TransferRequest true "Transfer"
// @Success 200 {object} response.Response
// @Router /vault/transfer [post]
func (h *VaultHandler) Transfer(c *gin.Context) {
	var req request.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	result, err := h.transfers.Transfer(c.Request.Context(), req.Amount, req.Recipient, req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Balance godoc
// @Summary Read a vault balance
// @Tags vault
// @Produce json
// @Param address query string true "Account address"
// @Param source query string false "vault (default) or token"
// @Success 200 {object} response.Response
// @Router /vault/balance [get]
func (h *VaultHandler) Balance(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		response.Error(c, errno.ErrBind.WithMessage("address is required"))
		return
	}

	var b *service.Balance
	if c.Query("source") == "token" {
		b = h.balances.Erc20Balance(c.Request.Context(), address)
	} else {
		b = h.balances.VaultBalance(c.Request.Context(), address)
	}
	response.Success(c, b)
}
