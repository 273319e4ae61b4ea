package domain

import (
	"fmt"

	"github.com/SscSPs/shopledger/internal/apperrors"
)

// Ledger specific failures. Each wraps one of the apperrors sentinels so callers can
// classify them with errors.Is without knowing the concrete cause.
var (
	ErrPaymentNotFound          = fmt.Errorf("payment not found: %w", apperrors.ErrNotFound)
	ErrInvalidRefundAmount      = fmt.Errorf("invalid refund amount: %w", apperrors.ErrValidation)
	ErrInvalidAllocation        = fmt.Errorf("invalid allocation: %w", apperrors.ErrValidation)
	ErrAllocationExceedsPayment = fmt.Errorf("allocations exceed payment amount: %w", apperrors.ErrValidation)
	ErrLedgerMissing            = fmt.Errorf("ledger account missing: %w", apperrors.ErrIntegrity)
	ErrSourceEntryImmutable     = fmt.Errorf("entry belongs to a source document: %w", apperrors.ErrValidation)
)
