package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is the ledger_transactions table row.
type LedgerTransaction struct {
	TransactionID   string
	LedgerID        string
	Amount          decimal.Decimal
	TransactionType string  // debit or credit
	ReferenceType   *string // Nullable: NULL for manual entries
	ReferenceID     *string // Nullable
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
}
