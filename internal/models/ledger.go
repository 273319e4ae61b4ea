package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the ledgers table row.
type Ledger struct {
	LedgerID       string
	CustomerID     string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerBalance is a ledgers row joined with its customer's name.
type CustomerBalance struct {
	CustomerID     string
	CustomerName   string
	LedgerID       string
	CurrentBalance decimal.Decimal
}
