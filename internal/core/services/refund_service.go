package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/shopspring/decimal"
)

// RefundPayment reverses part or all of a payment in one transaction: a
// compensating debit, the refund row, then allocations unwound most recent first
// until the refund amount is used up.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID string, req dto.RefundPaymentRequest) (*domain.PaymentRefund, error) {
	defer s.metrics.Track("refund_payment")()

	if err := validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected refund", slog.String("payment_id", paymentID))
		return nil, err
	}

	poster := newBalanceMaintainer(&s.BaseService)
	var refund domain.PaymentRefund
	var unwound int
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		payment, err := tx.FindPaymentByIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		amount := payment.Amount
		if req.Amount != nil {
			amount = *req.Amount
		}
		if err := s.checkRefundAmount(ctx, tx, *payment, amount); err != nil {
			return err
		}

		ledger, err := poster.requireLedger(ctx, tx, payment.CustomerID)
		if err != nil {
			return err
		}

		refund = domain.PaymentRefund{
			RefundID:  s.newID(),
			PaymentID: payment.PaymentID,
			Amount:    amount,
			Reason:    req.Reason,
			CreatedAt: s.now(),
		}
		desc := fmt.Sprintf("Refund of payment %s", payment.PaymentID)
		if req.Reason != "" {
			desc += " (" + req.Reason + ")"
		}
		entry := poster.newEntry(ledger.LedgerID, amount, domain.Debit, domain.RefPaymentRefund, refund.RefundID, desc)
		if err := poster.insert(ctx, tx, entry); err != nil {
			return err
		}
		if err := tx.SaveRefund(ctx, refund); err != nil {
			return fmt.Errorf("failed to save refund: %w", err)
		}

		unwound, err = s.unwindAllocations(ctx, tx, payment.PaymentID, amount)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Rejected refund", slog.String("payment_id", paymentID))
		} else {
			s.LogError(ctx, err, "Failed to refund payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	poster.committed()
	s.metrics.RefundRecorded()
	s.LogInfo(ctx, "Payment refunded",
		slog.String("payment_id", paymentID),
		slog.String("refund_id", refund.RefundID),
		slog.String("amount", refund.Amount.String()),
		slog.Int("allocations_touched", unwound))
	return &refund, nil
}

// checkRefundAmount enforces 0 < amount <= payment.amount, and with the strict
// policy also amount <= payment.amount - prior refunds.
func (s *paymentService) checkRefundAmount(ctx context.Context, tx portsrepo.Tx, payment domain.Payment, amount decimal.Decimal) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRefundAmount, err)
	}
	if amount.GreaterThan(payment.Amount) {
		return fmt.Errorf("%w: %s exceeds payment amount %s", domain.ErrInvalidRefundAmount, amount.String(), payment.Amount.String())
	}
	if !s.policy.StrictRefund {
		return nil
	}
	prior, err := tx.SumRefundsByPayment(ctx, payment.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to sum prior refunds: %w", err)
	}
	remaining := payment.Amount.Sub(prior)
	if amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: %s exceeds refundable remainder %s", domain.ErrInvalidRefundAmount, amount.String(), remaining.String())
	}
	return nil
}

// unwindAllocations walks the payment's allocations newest first. An allocation
// no larger than what is left is fully reversed and deleted; a larger one is
// reduced by the remainder and the walk stops. Returns the number touched.
func (s *paymentService) unwindAllocations(ctx context.Context, tx portsrepo.Tx, paymentID string, amount decimal.Decimal) (int, error) {
	allocations, err := tx.ListAllocationsForUnwind(ctx, paymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to list allocations: %w", err)
	}

	remaining := amount
	touched := 0
	for _, a := range allocations {
		if !remaining.IsPositive() {
			break
		}
		invoice, err := tx.FindInvoiceByIDForUpdate(ctx, a.InvoiceID)
		if err != nil {
			return touched, fmt.Errorf("failed to lock invoice %s: %w", a.InvoiceID, err)
		}

		reverse := a.Amount
		if a.Amount.GreaterThan(remaining) {
			reverse = remaining
		}
		paid, status := domain.Settle(invoice.AmountPaid, reverse.Neg(), invoice.Total())
		if err := tx.UpdateInvoiceSettlement(ctx, invoice.InvoiceID, paid, status, s.now()); err != nil {
			return touched, fmt.Errorf("failed to settle invoice %s: %w", invoice.InvoiceID, err)
		}

		if reverse.Equal(a.Amount) {
			if err := tx.DeleteAllocation(ctx, a.AllocationID); err != nil {
				return touched, fmt.Errorf("failed to delete allocation %s: %w", a.AllocationID, err)
			}
		} else {
			if err := tx.UpdateAllocationAmount(ctx, a.AllocationID, a.Amount.Sub(reverse)); err != nil {
				return touched, fmt.Errorf("failed to reduce allocation %s: %w", a.AllocationID, err)
			}
		}
		remaining = remaining.Sub(reverse)
		touched++
		s.LogDebug(ctx, "Allocation unwound",
			slog.String("allocation_id", a.AllocationID),
			slog.String("reversed", reverse.String()),
			slog.String("invoice_status", string(status)))
	}
	return touched, nil
}
