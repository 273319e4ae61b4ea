package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, customer_id, order_id, amount, tax, amount_paid, status,
	issue_date, due_date, created_at, updated_at`

func (r queries) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.InvoiceID, m.CustomerID, m.OrderID, m.Amount, m.Tax, m.AmountPaid, m.Status,
		m.IssueDate, m.DueDate, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, mapPgError(err))
	}
	return nil
}

func (r queries) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
}

func (r queries) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID)
}

func (r queries) findInvoice(ctx context.Context, query, invoiceID string) (*domain.Invoice, error) {
	var m models.Invoice
	err := r.q.QueryRow(ctx, query, invoiceID).Scan(&m.InvoiceID, &m.CustomerID, &m.OrderID, &m.Amount,
		&m.Tax, &m.AmountPaid, &m.Status, &m.IssueDate, &m.DueDate, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "invoice "+invoiceID)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

func (r queries) UpdateInvoiceSettlement(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, now time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET amount_paid = $2, status = $3, updated_at = $4
		WHERE invoice_id = $1;`, invoiceID, amountPaid, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update settlement of invoice %s: %w", invoiceID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}

func (r queries) InvoiceExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE order_id = $1);`, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invoices for order %s: %w", orderID, mapPgError(err))
	}
	return exists, nil
}
