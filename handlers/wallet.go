package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kerjalink/services/wallet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler exposes worker wallet endpoints.
type WalletHandler struct {
	Service wallet.Service
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc wallet.Service) *WalletHandler {
	return &WalletHandler{Service: svc}
}

// GetWalletHandler returns a worker's balance.
func (h *WalletHandler) GetWalletHandler(c *gin.Context) {
	w, err := h.Service.GetWallet(c.Request.Context(), c.Param("workerID"))
	if err != nil {
		zap.L().Error("Failed to fetch wallet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// GetLedgerHandler returns recent wallet transactions.
func (h *WalletHandler) GetLedgerHandler(c *gin.Context) {
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	txns, err := h.Service.GetLedger(c.Request.Context(), c.Param("workerID"), limit)
	if err != nil {
		zap.L().Error("Failed to fetch wallet ledger", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// WithdrawHandler deducts from the wallet.
func (h *WalletHandler) WithdrawHandler(c *gin.Context) {
	var input struct {
		Amount    float64 `json:"amount" binding:"required"`
		Reference string  `json:"reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	txn, err := h.Service.RequestWithdrawal(c.Request.Context(), c.Param("workerID"), input.Amount, input.Reference)
	if err != nil {
		var insufficient *wallet.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Withdrawal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Withdrawal failed"})
		return
	}
	c.JSON(http.StatusOK, txn)
}
