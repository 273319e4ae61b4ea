package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID  string
	CustomerID string
	OrderID    *string // Nullable
	Amount     decimal.Decimal
	Tax        decimal.Decimal
	AmountPaid decimal.Decimal
	Status     string
	IssueDate  time.Time
	DueDate    *time.Time // Nullable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
