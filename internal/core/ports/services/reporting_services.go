package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
)

// ReportingService defines the read-only portfolio views
type ReportingService interface {
	GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error)

	// GetCustomerAging buckets debits of every customer with a positive balance.
	// A nil boundaries slice uses the configured default.
	GetCustomerAging(ctx context.Context, boundaries []int) ([]domain.AgingRow, error)
}
