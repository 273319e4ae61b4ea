package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

// InvoiceSvcFacade defines invoice operations
type InvoiceSvcFacade interface {
	// IssueInvoice saves the invoice and posts its debit in the same transaction.
	IssueInvoice(ctx context.Context, req dto.IssueInvoiceRequest) (*domain.Invoice, error)

	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}
