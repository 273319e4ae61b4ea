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

type invoiceService struct {
	BaseService
	store portsrepo.Store
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(store portsrepo.Store, opts ...ServiceOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// IssueInvoice saves the invoice and, in the same transaction, posts a debit of
// amount+tax against the customer's ledger (creating the ledger if needed).
func (s *invoiceService) IssueInvoice(ctx context.Context, req dto.IssueInvoiceRequest) (*domain.Invoice, error) {
	defer s.metrics.Track("issue_invoice")()

	if err := validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected invoice")
		return nil, err
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: invoice %v", apperrors.ErrValidation, err)
	}
	tax := decimal.Zero
	if req.Tax != nil {
		tax = *req.Tax
		if tax.IsNegative() || !tax.Equal(tax.Round(2)) {
			return nil, fmt.Errorf("%w: tax must be a non-negative amount with at most two decimal places", apperrors.ErrValidation)
		}
	}

	now := s.now()
	invoice := domain.Invoice{
		InvoiceID:  s.newID(),
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Tax:        tax,
		AmountPaid: decimal.Zero,
		Status:     domain.InvoiceSent,
		IssueDate:  now,
		DueDate:    req.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.IssueDate != nil {
		invoice.IssueDate = req.IssueDate.UTC()
	}
	if req.OrderID != nil {
		invoice.OrderID = *req.OrderID
	}

	poster := newBalanceMaintainer(&s.BaseService)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := tx.FindCustomerByID(ctx, invoice.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("customer " + invoice.CustomerID)
			}
			return err
		}
		if invoice.OrderID != "" {
			order, err := tx.FindOrderByIDForUpdate(ctx, invoice.OrderID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.NewValidationError("order " + invoice.OrderID + " does not exist")
				}
				return err
			}
			if order.CustomerID != invoice.CustomerID {
				return apperrors.NewValidationError("order " + invoice.OrderID + " belongs to another customer")
			}
		}

		if err := tx.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		ledger, err := poster.ensureLedger(ctx, tx, invoice.CustomerID)
		if err != nil {
			return err
		}
		entry := poster.newEntry(ledger.LedgerID, invoice.Total(), domain.Debit, domain.RefInvoice, invoice.InvoiceID,
			fmt.Sprintf("Invoice %s issued", invoice.InvoiceID))
		entry.TransactionDate = invoice.IssueDate
		return poster.insert(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to issue invoice", slog.String("customer_id", invoice.CustomerID))
		return nil, err
	}

	poster.committed()
	s.LogInfo(ctx, "Invoice issued",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("customer_id", invoice.CustomerID),
		slog.String("total", invoice.Total().String()))
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.store.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
		}
		s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return invoice, nil
}
