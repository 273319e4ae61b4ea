package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

// Invoice is a receivable document; AmountPaid stays within [0, Amount+Tax].
type Invoice struct {
	InvoiceID  string          `json:"invoice_id"`
	CustomerID string          `json:"customer_id"`
	OrderID    string          `json:"order_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Tax        decimal.Decimal `json:"tax"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Status     InvoiceStatus   `json:"status"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Total is the amount the customer owes for the invoice.
func (i Invoice) Total() decimal.Decimal {
	return i.Amount.Add(i.Tax)
}

// Outstanding is what is still unpaid.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.Total().Sub(i.AmountPaid)
}

// Settle applies delta to the paid amount and returns the resulting paid amount and status.
// The paid amount is floored at zero and clamped to the total; status follows the
// paid/partially_paid/sent threshold rule. Forward allocations pass a positive delta,
// refund unwinds a negative one.
func Settle(amountPaid, delta, total decimal.Decimal) (decimal.Decimal, InvoiceStatus) {
	newPaid := amountPaid.Add(delta)
	if newPaid.IsNegative() {
		newPaid = decimal.Zero
	}
	switch {
	case newPaid.GreaterThanOrEqual(total):
		return total, InvoicePaid
	case newPaid.IsPositive():
		return newPaid, InvoicePartiallyPaid
	default:
		return newPaid, InvoiceSent
	}
}
