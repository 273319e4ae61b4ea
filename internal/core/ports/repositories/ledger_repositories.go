package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger accounts
type LedgerReader interface {
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error)
	FindLedgerByCustomerID(ctx context.Context, customerID string) (*domain.LedgerAccount, error)
}

// LedgerTxSupport defines the ledger operations used by the balance maintainer
type LedgerTxSupport interface {
	// SaveLedger persists a new ledger account. A second ledger for the same
	// customer fails with apperrors.ErrDuplicate.
	SaveLedger(ctx context.Context, ledger domain.LedgerAccount) error

	// SaveLedgerIfAbsent inserts the ledger unless the customer already has one.
	// It reports whether the row was inserted and leaves the transaction usable
	// either way.
	SaveLedgerIfAbsent(ctx context.Context, ledger domain.LedgerAccount) (bool, error)

	// FindLedgerByIDForUpdate locks the ledger row.
	FindLedgerByIDForUpdate(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error)

	// FindLedgerByCustomerIDForUpdate locks the customer's ledger row.
	FindLedgerByCustomerIDForUpdate(ctx context.Context, customerID string) (*domain.LedgerAccount, error)

	// AdjustLedgerBalance adds delta to current_balance, refreshes updated_at and
	// returns the new balance. A missing ledger yields apperrors.ErrNotFound.
	AdjustLedgerBalance(ctx context.Context, ledgerID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)
}
