package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, customer_id, amount, payment_method, reference_number, notes,
	payment_date, created_at`

func (r queries) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		m.PaymentID, m.CustomerID, money(m.Amount), m.PaymentMethod, m.ReferenceNumber, m.Notes,
		formatTime(m.PaymentDate), formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var m models.Payment
	err := r.q.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = ?;`, paymentID).
		Scan(&m.PaymentID, &m.CustomerID, &m.Amount, &m.PaymentMethod, &m.ReferenceNumber, &m.Notes,
			timeCol{&m.PaymentDate}, timeCol{&m.CreatedAt})
	if err != nil {
		return nil, notFoundOr(err, "payment "+paymentID)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

func (r queries) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.FindPaymentByID(ctx, paymentID)
}

func (r queries) SaveAllocation(ctx context.Context, allocation domain.PaymentAllocation) error {
	m := mapping.ToModelAllocation(allocation)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO payment_allocations (allocation_id, payment_id, invoice_id, amount, created_at)
		VALUES (?, ?, ?, ?, ?);`,
		m.AllocationID, m.PaymentID, m.InvoiceID, money(m.Amount), formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save allocation %s: %w", m.AllocationID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, "ASC", paymentID)
}

// ListAllocationsForUnwind returns allocations newest first.
func (r queries) ListAllocationsForUnwind(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, "DESC", paymentID)
}

func (r queries) listAllocations(ctx context.Context, direction, paymentID string) ([]domain.PaymentAllocation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT allocation_id, payment_id, invoice_id, amount, created_at
		FROM payment_allocations WHERE payment_id = ?
		ORDER BY created_at `+direction+`, allocation_id `+direction+`;`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations of payment %s: %w", paymentID, mapSQLiteError(err))
	}
	defer rows.Close()

	var ms []models.PaymentAllocation
	for rows.Next() {
		var m models.PaymentAllocation
		if err := rows.Scan(&m.AllocationID, &m.PaymentID, &m.InvoiceID, &m.Amount, timeCol{&m.CreatedAt}); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}
	return mapping.ToDomainAllocationSlice(ms), nil
}

func (r queries) DeleteAllocation(ctx context.Context, allocationID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM payment_allocations WHERE allocation_id = ?;`, allocationID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", allocationID, mapSQLiteError(err))
	}
	return requireAffected(res, "allocation "+allocationID)
}

func (r queries) UpdateAllocationAmount(ctx context.Context, allocationID string, amount decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx, `UPDATE payment_allocations SET amount = ? WHERE allocation_id = ?;`,
		money(amount), allocationID)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", allocationID, mapSQLiteError(err))
	}
	return requireAffected(res, "allocation "+allocationID)
}

func (r queries) SaveRefund(ctx context.Context, refund domain.PaymentRefund) error {
	m := mapping.ToModelRefund(refund)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO payment_refunds (refund_id, payment_id, amount, reason, created_at)
		VALUES (?, ?, ?, ?, ?);`,
		m.RefundID, m.PaymentID, money(m.Amount), m.Reason, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save refund %s: %w", m.RefundID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) ListRefundsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentRefund, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT refund_id, payment_id, amount, reason, created_at
		FROM payment_refunds WHERE payment_id = ?
		ORDER BY created_at ASC, refund_id ASC;`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds of payment %s: %w", paymentID, mapSQLiteError(err))
	}
	defer rows.Close()

	var ms []models.PaymentRefund
	for rows.Next() {
		var m models.PaymentRefund
		if err := rows.Scan(&m.RefundID, &m.PaymentID, &m.Amount, &m.Reason, timeCol{&m.CreatedAt}); err != nil {
			return nil, fmt.Errorf("failed to scan refund: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refunds: %w", err)
	}
	return mapping.ToDomainRefundSlice(ms), nil
}

// SumRefundsByPayment adds the amounts in Go; SQLite SUM over TEXT would go through floats.
func (r queries) SumRefundsByPayment(ctx context.Context, paymentID string) (decimal.Decimal, error) {
	refunds, err := r.ListRefundsByPayment(ctx, paymentID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, refund := range refunds {
		total = total.Add(refund.Amount)
	}
	return total, nil
}
