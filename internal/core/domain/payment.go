package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received from a customer. It is immutable once recorded except
// through the refund flow.
type Payment struct {
	PaymentID       string          `json:"payment_id"`
	CustomerID      string          `json:"customer_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	PaymentDate     time.Time       `json:"payment_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentAllocation is the portion of a payment applied to one invoice.
type PaymentAllocation struct {
	AllocationID string          `json:"allocation_id"`
	PaymentID    string          `json:"payment_id"`
	InvoiceID    string          `json:"invoice_id"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentRefund records a reversal of (part of) a payment.
type PaymentRefund struct {
	RefundID  string          `json:"refund_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Allocation is a validated request to apply part of a payment to an invoice.
type Allocation struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// PaymentDetails bundles a payment with its current allocations and refunds.
type PaymentDetails struct {
	Payment     Payment             `json:"payment"`
	Allocations []PaymentAllocation `json:"allocations"`
	Refunds     []PaymentRefund     `json:"refunds"`
}

// RefundedAmount sums the refunds recorded so far.
func (d PaymentDetails) RefundedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, r := range d.Refunds {
		total = total.Add(r.Amount)
	}
	return total
}
