package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, customer_id, amount, payment_method, reference_number, notes,
	payment_date, created_at`

func (r queries) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.PaymentID, m.CustomerID, m.Amount, m.PaymentMethod, m.ReferenceNumber, m.Notes,
		m.PaymentDate, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, mapPgError(err))
	}
	return nil
}

func (r queries) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findPayment(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1;`, paymentID)
}

func (r queries) FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return r.findPayment(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1 FOR UPDATE;`, paymentID)
}

func (r queries) findPayment(ctx context.Context, query, paymentID string) (*domain.Payment, error) {
	var m models.Payment
	err := r.q.QueryRow(ctx, query, paymentID).Scan(&m.PaymentID, &m.CustomerID, &m.Amount,
		&m.PaymentMethod, &m.ReferenceNumber, &m.Notes, &m.PaymentDate, &m.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "payment "+paymentID)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

func (r queries) SaveAllocation(ctx context.Context, allocation domain.PaymentAllocation) error {
	m := mapping.ToModelAllocation(allocation)
	_, err := r.q.Exec(ctx, `
		INSERT INTO payment_allocations (allocation_id, payment_id, invoice_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5);`,
		m.AllocationID, m.PaymentID, m.InvoiceID, m.Amount, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save allocation %s: %w", m.AllocationID, mapPgError(err))
	}
	return nil
}

func (r queries) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, `
		SELECT allocation_id, payment_id, invoice_id, amount, created_at
		FROM payment_allocations WHERE payment_id = $1
		ORDER BY created_at ASC, allocation_id ASC;`, paymentID)
}

// ListAllocationsForUnwind returns allocations newest first and locks them.
func (r queries) ListAllocationsForUnwind(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, `
		SELECT allocation_id, payment_id, invoice_id, amount, created_at
		FROM payment_allocations WHERE payment_id = $1
		ORDER BY created_at DESC, allocation_id DESC
		FOR UPDATE;`, paymentID)
}

func (r queries) listAllocations(ctx context.Context, query, paymentID string) ([]domain.PaymentAllocation, error) {
	rows, err := r.q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations of payment %s: %w", paymentID, mapPgError(err))
	}
	defer rows.Close()

	var ms []models.PaymentAllocation
	for rows.Next() {
		var m models.PaymentAllocation
		if err := rows.Scan(&m.AllocationID, &m.PaymentID, &m.InvoiceID, &m.Amount, &m.CreatedAt); err != nil {
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
	tag, err := r.q.Exec(ctx, `DELETE FROM payment_allocations WHERE allocation_id = $1;`, allocationID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", allocationID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", allocationID, apperrors.ErrNotFound)
	}
	return nil
}

func (r queries) UpdateAllocationAmount(ctx context.Context, allocationID string, amount decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE payment_allocations SET amount = $2 WHERE allocation_id = $1;`, allocationID, amount)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", allocationID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s: %w", allocationID, apperrors.ErrNotFound)
	}
	return nil
}

func (r queries) SaveRefund(ctx context.Context, refund domain.PaymentRefund) error {
	m := mapping.ToModelRefund(refund)
	_, err := r.q.Exec(ctx, `
		INSERT INTO payment_refunds (refund_id, payment_id, amount, reason, created_at)
		VALUES ($1, $2, $3, $4, $5);`,
		m.RefundID, m.PaymentID, m.Amount, m.Reason, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save refund %s: %w", m.RefundID, mapPgError(err))
	}
	return nil
}

func (r queries) ListRefundsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentRefund, error) {
	rows, err := r.q.Query(ctx, `
		SELECT refund_id, payment_id, amount, reason, created_at
		FROM payment_refunds WHERE payment_id = $1
		ORDER BY created_at ASC, refund_id ASC;`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds of payment %s: %w", paymentID, mapPgError(err))
	}
	defer rows.Close()

	var ms []models.PaymentRefund
	for rows.Next() {
		var m models.PaymentRefund
		if err := rows.Scan(&m.RefundID, &m.PaymentID, &m.Amount, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan refund: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refunds: %w", err)
	}
	return mapping.ToDomainRefundSlice(ms), nil
}

func (r queries) SumRefundsByPayment(ctx context.Context, paymentID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payment_refunds WHERE payment_id = $1;`, paymentID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum refunds of payment %s: %w", paymentID, mapPgError(err))
	}
	return total, nil
}
