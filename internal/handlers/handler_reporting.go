package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/middleware"
	"github.com/SscSPs/shopledger/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers the portfolio report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/ledger-summary", h.getLedgerSummary)
		reports.GET("/aging", h.getCustomerAging)
	}
}

// getLedgerSummary godoc
// @Summary Ledger summary
// @Description Totals of outstanding and advance balances across all customers
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build ledger summary"
// @Security BearerAuth
// @Router /reports/ledger-summary [get]
func (h *reportingHandler) getLedgerSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.GetLedgerSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build ledger summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary))
}

// getCustomerAging godoc
// @Summary Customer aging report
// @Description Buckets each positive-balance customer's debit entries by age in days
// @Tags reports
// @Produce  json
// @Param   boundaries query string false "Comma separated, strictly increasing day boundaries" default(30,60,90)
// @Success 200 {array} dto.AgingRowResponse
// @Failure 400 {object} map[string]string "Invalid boundaries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build aging report"
// @Security BearerAuth
// @Router /reports/aging [get]
func (h *reportingHandler) getCustomerAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var boundaries []int
	if raw := c.Query("boundaries"); raw != "" {
		parsed, err := accounting.ParseBoundaries(raw)
		if err != nil {
			logger.Warn("Invalid aging boundaries", slog.String("boundaries", raw), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		boundaries = parsed
	}

	rows, err := h.reportingService.GetCustomerAging(c.Request.Context(), boundaries)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build aging report")
		return
	}

	c.JSON(http.StatusOK, dto.ToAgingResponse(rows))
}
