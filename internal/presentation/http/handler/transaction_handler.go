package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/response"
)

// TransactionHandler exposes the sales ledger to the admin area.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles GET /admin/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	params := parsePagination(c)

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved", result)
}

// Get handles GET /admin/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved", txn)
}

// Clear handles DELETE /admin/transactions
func (h *TransactionHandler) Clear(c *gin.Context) {
	if err := h.transactionService.ClearLedger(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction history cleared", nil)
}

// ExportCSV handles GET /admin/transactions/export.csv
func (h *TransactionHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.transactionService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}
