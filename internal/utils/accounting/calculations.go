package accounting

import (
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReplayBalance recomputes a ledger balance from its opening balance and journal.
// The stored current_balance must always equal this value.
func ReplayBalance(opening decimal.Decimal, entries []domain.LedgerTransaction) decimal.Decimal {
	balance := opening
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance
}

// SummarizeBalances rolls every ledger balance into the portfolio summary.
// Receivables sum the positive balances, payables the absolute negative ones.
func SummarizeBalances(balances []domain.CustomerBalance) domain.LedgerSummary {
	summary := domain.LedgerSummary{
		TotalCustomers:              len(balances),
		TotalOutstandingReceivables: decimal.Zero,
		TotalOutstandingPayables:    decimal.Zero,
		NetPosition:                 decimal.Zero,
	}
	for _, b := range balances {
		switch b.CurrentBalance.Sign() {
		case 1:
			summary.CustomersWithPositiveBalance++
			summary.TotalOutstandingReceivables = summary.TotalOutstandingReceivables.Add(b.CurrentBalance)
		case -1:
			summary.CustomersWithNegativeBalance++
			summary.TotalOutstandingPayables = summary.TotalOutstandingPayables.Add(b.CurrentBalance.Abs())
		default:
			summary.CustomersWithZeroBalance++
		}
		summary.NetPosition = summary.NetPosition.Add(b.CurrentBalance)
	}
	return summary
}
