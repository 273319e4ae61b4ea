package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceTxSupport defines invoice operations used inside a transaction
type InvoiceTxSupport interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByIDForUpdate locks the invoice row so amount_paid can be read-modify-written.
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	UpdateInvoiceSettlement(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, now time.Time) error

	// InvoiceExistsForOrder reports whether any invoice references the order.
	InvoiceExistsForOrder(ctx context.Context, orderID string) (bool, error)
}
