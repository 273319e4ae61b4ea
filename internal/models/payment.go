package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row.
type Payment struct {
	PaymentID       string
	CustomerID      string
	Amount          decimal.Decimal
	PaymentMethod   string
	ReferenceNumber *string // Nullable
	Notes           *string // Nullable
	PaymentDate     time.Time
	CreatedAt       time.Time
}

// PaymentAllocation is the payment_allocations table row.
type PaymentAllocation struct {
	AllocationID string
	PaymentID    string
	InvoiceID    string
	Amount       decimal.Decimal
	CreatedAt    time.Time
}

// PaymentRefund is the payment_refunds table row.
type PaymentRefund struct {
	RefundID  string
	PaymentID string
	Amount    decimal.Decimal
	Reason    *string // Nullable
	CreatedAt time.Time
}
