package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/shopledger/internal/core/domain"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// RegisterPaymentRoutes registers routes related to payments. submitMiddleware
// (for example idempotency) runs only on the routes that move money.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, submitMiddleware ...gin.HandlerFunc) {
	h := &paymentHandler{paymentService: paymentService}

	payments := rg.Group("/payments")
	{
		payments.POST("", withMiddleware(submitMiddleware, h.recordPayment)...)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/refunds", withMiddleware(submitMiddleware, h.refundPayment)...)
	}
}

func withMiddleware(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mw)+1)
	chain = append(chain, mw...)
	return append(chain, handler)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Credits the customer's ledger and applies the optional allocations atomically. One invalid allocation rejects the whole payment.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Replays the first successful response for repeated submissions"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or allocation rejected"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Duplicate submission in progress"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	details, err := h.paymentService.GetPayment(c.Request.Context(), payment.PaymentID)
	if err != nil {
		// The payment is committed; answer with what we have.
		logger.Warn("Failed to reload recorded payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		details = &domain.PaymentDetails{Payment: *payment}
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(details))
}

// getPayment godoc
// @Summary Get a payment
// @Description Returns the payment with its current allocations and refunds
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", c.Param("paymentID")))

	details, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(details))
}

// refundPayment godoc
// @Summary Refund a payment
// @Description Debits the ledger with the refund and unwinds the payment's allocations, most recent first. Omitting amount refunds the full payment.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   Idempotency-Key header string false "Replays the first successful response for repeated submissions"
// @Param   refund body dto.RefundPaymentRequest false "Refund details"
// @Success 201 {object} dto.RefundResponse
// @Failure 400 {object} map[string]string "Invalid refund amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Duplicate submission in progress"
// @Failure 500 {object} map[string]string "Failed to refund payment"
// @Security BearerAuth
// @Router /payments/{paymentID}/refunds [post]
func (h *paymentHandler) refundPayment(c *gin.Context) {
	paymentID := c.Param("paymentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", paymentID))

	var req dto.RefundPaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for RefundPayment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	refund, err := h.paymentService.RefundPayment(c.Request.Context(), paymentID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to refund payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRefundResponse(refund))
}
