package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/repository"
	"github.com/mahameru/inventory/internal/service/inventory"
)

// TransactionHandler records and lists receipts and issuances.
type TransactionHandler struct {
	invSvc       *inventory.Service
	transactions repository.TransactionRepository
	logger       *zap.Logger
}

// NewTransactionHandler constructs the transaction HTTP adapter.
func NewTransactionHandler(invSvc *inventory.Service, transactions repository.TransactionRepository, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{invSvc: invSvc, transactions: transactions, logger: logger}
}

// ListReceipts returns the full receipts collection.
func (h *TransactionHandler) ListReceipts(c *gin.Context) {
	items, err := h.transactions.ListReceipts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing receipts", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateReceipt records an incoming delivery and bumps the material stock.
func (h *TransactionHandler) CreateReceipt(c *gin.Context) {
	var in inventory.ReceiptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt payload"})
		return
	}

	receipt, err := h.invSvc.RecordReceipt(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// ListIssuances returns the full issuances collection.
func (h *TransactionHandler) ListIssuances(c *gin.Context) {
	items, err := h.transactions.ListIssuances(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing issuances", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateIssuance records an outgoing movement and lowers the material
// stock, refusing to issue more than is on hand.
func (h *TransactionHandler) CreateIssuance(c *gin.Context) {
	var in inventory.IssuanceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issuance payload"})
		return
	}

	issuance, err := h.invSvc.RecordIssuance(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issuance)
}
