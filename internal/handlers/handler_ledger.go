package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// RegisterLedgerRoutes registers journal listing and manual entry routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledgers := rg.Group("/ledgers/:ledgerID/transactions")
	{
		ledgers.POST("", h.postTransaction)
		ledgers.GET("", h.listTransactions)
	}

	entries := rg.Group("/ledger-transactions")
	{
		entries.PUT("/:transactionID", h.correctTransaction)
		entries.DELETE("/:transactionID", h.voidTransaction)
	}
}

// postTransaction godoc
// @Summary Post a manual journal entry
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   entry body dto.LedgerTransactionRequest true "Entry details"
// @Success 201 {object} dto.LedgerTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 500 {object} map[string]string "Failed to post ledger transaction"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/transactions [post]
func (h *ledgerHandler) postTransaction(c *gin.Context) {
	ledgerID := c.Param("ledgerID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ledger_id", ledgerID))

	var req dto.LedgerTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostLedgerTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.PostLedgerTransaction(c.Request.Context(), ledgerID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post ledger transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerTransactionResponse(entry))
}

// listTransactions godoc
// @Summary List a ledger's journal
// @Description Entries ordered by transaction date, creation time and id. Pass limit to page and nextToken to continue.
// @Tags ledgers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   from query string false "First day (YYYY-MM-DD), inclusive"
// @Param   to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param   limit query int false "Page size (1-500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 500 {object} map[string]string "Failed to list ledger transactions"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	ledgerID := c.Param("ledgerID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ledger_id", ledgerID))

	var params dto.ListLedgerTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListLedgerTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListLedgerTransactions(c.Request.Context(), ledgerID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list ledger transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// correctTransaction godoc
// @Summary Correct a manual journal entry
// @Description Reverses the entry's effect on the balance and applies the corrected values. Entries produced by invoices, payments, orders or refunds cannot be corrected.
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Ledger transaction ID"
// @Param   entry body dto.LedgerTransactionRequest true "Corrected entry"
// @Success 200 {object} dto.LedgerTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or entry not correctable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to correct ledger transaction"
// @Security BearerAuth
// @Router /ledger-transactions/{transactionID} [put]
func (h *ledgerHandler) correctTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	var req dto.LedgerTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CorrectLedgerTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.CorrectLedgerTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to correct ledger transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerTransactionResponse(entry))
}

// voidTransaction godoc
// @Summary Void a manual journal entry
// @Tags ledgers
// @Param   transactionID path string true "Ledger transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Entry not voidable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to void ledger transaction"
// @Security BearerAuth
// @Router /ledger-transactions/{transactionID} [delete]
func (h *ledgerHandler) voidTransaction(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	if err := h.ledgerService.VoidLedgerTransaction(c.Request.Context(), transactionID); err != nil {
		respondServiceError(c, logger, err, "Failed to void ledger transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
