package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/services"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	events             telemetry.Sink
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, events telemetry.Sink) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, events: events}
}

// UpdateTransactionRequest is the PUT payload: the target id plus the full
// replacement record.
type UpdateTransactionRequest struct {
	ID string `json:"id"`
	validator.TransactionInput
}

// GetTransactions handles listing every transaction.
// @Summary     List transactions
// @Description Get all transactions, newest date first
// @Tags        transactions
// @Produce     json
// @Success     200 {array}  models.Transaction "Transactions"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	txs, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Validate and store a new transaction. Category defaults to Other.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body     validator.TransactionInput true "Transaction details"
// @Success     201     {object} models.Transaction "Transaction created"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /v1/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req validator.TransactionInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventTransactionAdded, map[string]interface{}{
		"amount":   tx.Amount,
		"category": tx.Category,
	}))

	c.JSON(http.StatusCreated, tx)
}

// UpdateTransaction handles replacing a transaction.
// @Summary     Update a transaction
// @Description Replace every field of the transaction whose id is in the body
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body     UpdateTransactionRequest true "Transaction id and details"
// @Success     200     {object} models.Transaction "Transaction updated"
// @Failure     400     {object} ErrorResponse "Missing id or invalid input"
// @Failure     404     {object} ErrorResponse "Transaction not found"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /v1/transactions [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), req.ID, req.TransactionInput)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventTransactionUpdated, map[string]interface{}{
		"amount":   tx.Amount,
		"category": tx.Category,
	}))

	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete a transaction
// @Description Permanently delete the transaction with the given id
// @Tags        transactions
// @Produce     json
// @Param       id  query    string true "Transaction ID"
// @Success     200 {object} SuccessResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Missing or invalid id"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/transactions [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), c.Query("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventTransactionDeleted, nil))

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
