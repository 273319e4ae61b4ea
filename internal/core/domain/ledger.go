package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccount is the per-customer running balance record.
// CurrentBalance always equals OpeningBalance plus debits minus credits of its journal.
type LedgerAccount struct {
	LedgerID       string          `json:"ledger_id"`
	CustomerID     string          `json:"customer_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewLedgerAccount returns a ledger whose current balance starts at the opening balance.
func NewLedgerAccount(ledgerID, customerID string, opening decimal.Decimal, now time.Time) LedgerAccount {
	return LedgerAccount{
		LedgerID:       ledgerID,
		CustomerID:     customerID,
		OpeningBalance: opening,
		CurrentBalance: opening,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
