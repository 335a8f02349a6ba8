package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mybudget/internal/errors"
	"mybudget/internal/models"
	"mybudget/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Category    string                 `json:"category" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date" binding:"required,txn_date"`
}

// UpdateTransactionRequest represents the request payload for a partial
// transaction update. Absent fields keep their stored value.
type UpdateTransactionRequest struct {
	Category    *string                 `json:"category"`
	Amount      *float64                `json:"amount" binding:"omitempty,gt=0"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Date        *string                 `json:"date" binding:"omitempty,txn_date"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a new income or expense transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.Category, req.Amount, req.Type, req.Description, req.Date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles listing transactions with optional filters.
// @Summary     List transactions
// @Description List transactions, newest first, with optional conjunctive filters
// @Tags        transactions
// @Produce     json
// @Param       category query string false "Filter by exact category"
// @Param       type     query string false "Filter by type (income/expense)"
// @Param       dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param       dateTo   query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success     200 {array}  models.Transaction "Matching transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction handles retrieving a single transaction.
// @Summary     Get transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction handles a partial transaction update.
// @Summary     Update transaction
// @Description Update only the supplied fields of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                      true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(id, services.TransactionPatch{
		Category:    req.Category,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Param       id path int true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetStats handles the global income/expense totals.
// @Summary     Get global stats
// @Description Total income, total expenses, and balance over all transactions
// @Tags        transactions
// @Produce     json
// @Success     200 {object} models.Stats "Aggregate totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/stats/summary [get]
func (h *TransactionHandler) GetStats(c *gin.Context) {
	stats, err := h.transactionService.GetStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
