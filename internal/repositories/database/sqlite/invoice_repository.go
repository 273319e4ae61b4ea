package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `invoice_id, customer_id, order_id, amount, tax, amount_paid, status,
	issue_date, due_date, created_at, updated_at`

func (r queries) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.InvoiceID, m.CustomerID, m.OrderID, money(m.Amount), money(m.Tax), money(m.AmountPaid), m.Status,
		formatTime(m.IssueDate), formatNullTime(m.DueDate), formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", m.InvoiceID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var m models.Invoice
	err := r.q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = ?;`, invoiceID).
		Scan(&m.InvoiceID, &m.CustomerID, &m.OrderID, &m.Amount, &m.Tax, &m.AmountPaid, &m.Status,
			timeCol{&m.IssueDate}, nullTimeCol{&m.DueDate}, timeCol{&m.CreatedAt}, timeCol{&m.UpdatedAt})
	if err != nil {
		return nil, notFoundOr(err, "invoice "+invoiceID)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

func (r queries) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, invoiceID)
}

func (r queries) UpdateInvoiceSettlement(ctx context.Context, invoiceID string, amountPaid decimal.Decimal, status domain.InvoiceStatus, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invoices SET amount_paid = ?, status = ?, updated_at = ?
		WHERE invoice_id = ?;`, money(amountPaid), string(status), formatTime(now), invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update settlement of invoice %s: %w", invoiceID, mapSQLiteError(err))
	}
	return requireAffected(res, "invoice "+invoiceID)
}

func (r queries) InvoiceExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE order_id = ?);`, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invoices for order %s: %w", orderID, mapSQLiteError(err))
	}
	return exists, nil
}
