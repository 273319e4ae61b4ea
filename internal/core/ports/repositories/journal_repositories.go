package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
)

// JournalCursor identifies the last entry of a page.
type JournalCursor struct {
	TransactionDate time.Time
	CreatedAt       time.Time
	TransactionID   string
}

// JournalFilter narrows a ledger's journal listing to From <= transaction_date < Until.
// A zero Limit returns every matching entry.
type JournalFilter struct {
	LedgerID string
	From     *time.Time
	Until    *time.Time
	Limit    int
	After    *JournalCursor
}

// JournalReader defines read operations for journal entries
type JournalReader interface {
	FindLedgerTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// ListLedgerTransactions orders by transaction_date, created_at, transaction_id ascending.
	ListLedgerTransactions(ctx context.Context, filter JournalFilter) ([]domain.LedgerTransaction, error)
}

// JournalTxSupport defines journal mutations. Callers pair each of them with
// exactly one ledger balance adjustment.
type JournalTxSupport interface {
	SaveLedgerTransaction(ctx context.Context, entry domain.LedgerTransaction) error
	FindLedgerTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)
	UpdateLedgerTransaction(ctx context.Context, entry domain.LedgerTransaction) error
	DeleteLedgerTransaction(ctx context.Context, transactionID string) error
}
