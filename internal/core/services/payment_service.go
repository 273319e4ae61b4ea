package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	store portsrepo.Store
}

// NewPaymentService creates the payment allocation and refund service.
func NewPaymentService(store portsrepo.Store, opts ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// allocationError tags a rejected allocation with a metrics reason.
type allocationError struct {
	reason string
	err    error
}

func (e *allocationError) Error() string { return e.err.Error() }
func (e *allocationError) Unwrap() error { return e.err }

func rejectAllocation(reason string, format string, args ...any) error {
	return &allocationError{
		reason: reason,
		err:    fmt.Errorf("%w: %s", domain.ErrInvalidAllocation, fmt.Sprintf(format, args...)),
	}
}

// checkAllocations validates the typed allocation list before any write happens.
func (s *paymentService) checkAllocations(req dto.RecordPaymentRequest) ([]domain.Allocation, error) {
	allocations := make([]domain.Allocation, 0, len(req.Allocations))
	sum := decimal.Zero
	for i, a := range req.Allocations {
		if a.InvoiceID == "" {
			return nil, rejectAllocation("malformed", "allocation %d: invoice_id is required", i)
		}
		if a.Amount == nil {
			return nil, rejectAllocation("malformed", "allocation %d: amount is required", i)
		}
		if err := domain.ValidateAmount(*a.Amount); err != nil {
			return nil, rejectAllocation("malformed", "allocation %d: %v", i, err)
		}
		sum = sum.Add(*a.Amount)
		allocations = append(allocations, domain.Allocation{InvoiceID: a.InvoiceID, Amount: *a.Amount})
	}
	if s.policy.StrictAllocation && sum.GreaterThan(req.Amount) {
		return nil, &allocationError{
			reason: "exceeds_payment",
			err:    fmt.Errorf("%w: allocated %s of %s", domain.ErrAllocationExceedsPayment, sum.String(), req.Amount.String()),
		}
	}
	return allocations, nil
}

// RecordPayment runs as one transaction: save the payment, post its credit, then for
// each allocation in submitted order lock the invoice, save the allocation and
// settle the invoice. Any failure rolls back every row of the batch.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	defer s.metrics.Track("record_payment")()

	if err := domain.ValidateAmount(req.Amount); err != nil {
		err = fmt.Errorf("%w: payment %v", apperrors.ErrValidation, err)
		s.LogWarn(ctx, err, "Rejected payment")
		return nil, err
	}
	allocations, err := s.checkAllocations(req)
	if err != nil {
		return nil, s.rejected(ctx, err)
	}
	// Field level rules (payment method, lengths) after the allocation checks so a
	// malformed allocation is reported as such.
	if err := validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected payment")
		return nil, err
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:       s.newID(),
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		PaymentDate:     now,
		CreatedAt:       now,
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = req.PaymentDate.UTC()
	}

	poster := newBalanceMaintainer(&s.BaseService)
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := tx.FindCustomerByID(ctx, payment.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("customer " + payment.CustomerID)
			}
			return err
		}
		ledger, err := poster.requireLedger(ctx, tx, payment.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		entry := poster.newEntry(ledger.LedgerID, payment.Amount, domain.Credit, domain.RefPayment, payment.PaymentID,
			paymentDescription(payment))
		entry.TransactionDate = payment.PaymentDate
		if err := poster.insert(ctx, tx, entry); err != nil {
			return err
		}

		for i, a := range allocations {
			if err := s.applyAllocation(ctx, tx, payment, i, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var allocErr *allocationError
		if errors.As(err, &allocErr) {
			return nil, s.rejected(ctx, err)
		}
		s.LogError(ctx, err, "Failed to record payment", slog.String("customer_id", payment.CustomerID))
		return nil, err
	}

	poster.committed()
	s.metrics.PaymentRecorded()
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("customer_id", payment.CustomerID),
		slog.String("amount", payment.Amount.String()),
		slog.Int("allocations", len(allocations)))
	return &payment, nil
}

func (s *paymentService) applyAllocation(ctx context.Context, tx portsrepo.Tx, payment domain.Payment, i int, a domain.Allocation) error {
	invoice, err := tx.FindInvoiceByIDForUpdate(ctx, a.InvoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return rejectAllocation("invoice_not_found", "allocation %d: invoice %s does not exist", i, a.InvoiceID)
		}
		return fmt.Errorf("failed to lock invoice %s: %w", a.InvoiceID, err)
	}
	if invoice.CustomerID != payment.CustomerID {
		return rejectAllocation("customer_mismatch", "allocation %d: invoice %s belongs to another customer", i, a.InvoiceID)
	}
	if invoice.Status == domain.InvoiceCancelled {
		return rejectAllocation("invoice_cancelled", "allocation %d: invoice %s is cancelled", i, a.InvoiceID)
	}

	allocation := domain.PaymentAllocation{
		AllocationID: s.newID(),
		PaymentID:    payment.PaymentID,
		InvoiceID:    a.InvoiceID,
		Amount:       a.Amount,
		CreatedAt:    s.now(),
	}
	if err := tx.SaveAllocation(ctx, allocation); err != nil {
		return fmt.Errorf("failed to save allocation: %w", err)
	}

	paid, status := domain.Settle(invoice.AmountPaid, a.Amount, invoice.Total())
	if err := tx.UpdateInvoiceSettlement(ctx, invoice.InvoiceID, paid, status, s.now()); err != nil {
		return fmt.Errorf("failed to settle invoice %s: %w", invoice.InvoiceID, err)
	}
	s.LogDebug(ctx, "Allocation applied",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("amount_paid", paid.String()),
		slog.String("status", string(status)))
	return nil
}

func (s *paymentService) rejected(ctx context.Context, err error) error {
	var allocErr *allocationError
	if errors.As(err, &allocErr) {
		s.metrics.AllocationRejected(allocErr.reason)
	}
	s.LogWarn(ctx, err, "Rejected payment")
	return err
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentDetails, error) {
	payment, err := s.store.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		s.LogError(ctx, err, "Failed to get payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	allocations, err := s.store.ListAllocationsByPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	refunds, err := s.store.ListRefundsByPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refunds: %w", err)
	}
	return &domain.PaymentDetails{Payment: *payment, Allocations: allocations, Refunds: refunds}, nil
}

func paymentDescription(p domain.Payment) string {
	desc := "Payment received via " + p.PaymentMethod
	if p.ReferenceNumber != "" {
		desc += " (Ref: " + p.ReferenceNumber + ")"
	}
	return desc
}
