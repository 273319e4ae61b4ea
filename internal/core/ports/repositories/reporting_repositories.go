package repositories

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
)

// ReportingReader feeds the summary and aging views.
type ReportingReader interface {
	// ListCustomerBalances returns every ledger joined with its customer.
	ListCustomerBalances(ctx context.Context) ([]domain.CustomerBalance, error)

	// ListDebitEntries returns the debit entries of the given ledgers.
	ListDebitEntries(ctx context.Context, ledgerIDs []string) ([]domain.LedgerTransaction, error)
}
