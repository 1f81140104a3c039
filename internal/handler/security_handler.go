package handler

import (
	"github.com/gin-gonic/gin"

	"vault-core/internal/handler/request"
	"vault-core/internal/handler/response"
	"vault-core/internal/security"
	"vault-core/internal/service"
	"vault-core/pkg/errno"
	"vault-core/pkg/monitor"
	"vault-core/pkg/validator"
)

// SecurityHandler exposes the policy engine: status, freeze control,
// history and dry-run evaluation.
type SecurityHandler struct {
	engine    *security.Engine
	transfers *service.TransferService
}

func NewSecurityHandler(engine *security.Engine, transfers *service.TransferService) *SecurityHandler {
	return &SecurityHandler{engine: engine, transfers: transfers}
}

// Status godoc
// @Summary Current security state and limits
// @Tags security
// @Produce json
// @Success 200 {object} response.Response
// @Router /security/status [get]
func (h *SecurityHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	snap := h.engine.Snapshot()

	response.Success(c, gin.H{
		"is_frozen":                snap.IsFrozen,
		"last_activity":            snap.LastActivity,
		"daily_spent":              h.engine.DailySpent(ctx),
		"remaining_daily":          h.engine.RemainingDailyAllowance(ctx),
		"remaining_hourly_txs":     h.engine.RemainingHourlyTxs(),
		"recent_transaction_count": len(h.engine.RecentTransactions()),
		"limits":                   h.engine.Limits(),
	})
}

// Evaluate godoc
// @Summary Dry-run the policy for an amount
// @Tags security
// @Accept json
// @Produce json
// @Param request body request.EvaluateRequest true "Amount"
// @Success 200 {object} response.Response
// @Router /security/evaluate [post]
func (h *SecurityHandler) Evaluate(c *gin.Context) {
	var req request.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}
	response.Success(c, h.transfers.Evaluate(c.Request.Context(), req.Amount))
}

// Freeze godoc
// @Summary Freeze the wallet
// @Tags security
// @Produce json
// @Success 200 {object} response.Response
// @Router /security/freeze [post]
func (h *SecurityHandler) Freeze(c *gin.Context) {
	if err := h.engine.Freeze(c.Request.Context()); err != nil {
		response.Error(c, errno.ErrStorage)
		return
	}
	if monitor.Vault != nil {
		monitor.Vault.FreezeEventsTotal.WithLabelValues("user").Inc()
	}
	response.Success(c, gin.H{"is_frozen": true})
}

// Unfreeze godoc
// @Summary Unfreeze the wallet
// @Tags security
// @Produce json
// @Success 200 {object} response.Response
// @Router /security/unfreeze [post]
func (h *SecurityHandler) Unfreeze(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.engine.Unfreeze(ctx); err != nil {
		response.Error(c, errno.ErrStorage)
		return
	}
	// Unfreezing is user activity; without this the inactivity monitor
	// would freeze the wallet right back on its next sweep.
	if err := h.engine.UpdateActivity(ctx); err != nil {
		response.Error(c, errno.ErrStorage)
		return
	}
	if monitor.Vault != nil {
		monitor.Vault.FreezeEventsTotal.WithLabelValues("user").Inc()
	}
	response.Success(c, gin.H{"is_frozen": false})
}

// History godoc
// @Summary Transaction history, newest first
// @Tags security
// @Produce json
// @Success 200 {object} response.Response
// @Router /security/history [get]
func (h *SecurityHandler) History(c *gin.Context) {
	snap := h.engine.Snapshot()
	history := snap.History
	if history == nil {
		history = []security.Record{}
	}
	response.Success(c, history)
}

// ClearHistory godoc
// @Summary Clear the transaction history
// @Description Removes records only; spend accounting and freeze state stay
// @Tags security
// @Produce json
// @Success 200 {object} response.Response
// @Router /security/history [delete]
func (h *SecurityHandler) ClearHistory(c *gin.Context) {
	if err := h.engine.ClearHistory(c.Request.Context()); err != nil {
		response.Error(c, errno.ErrStorage)
		return
	}
	response.Success(c, nil)
}
