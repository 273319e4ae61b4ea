package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	// GetPayment returns the payment with its current allocations and refunds.
	GetPayment(ctx context.Context, paymentID string) (*domain.PaymentDetails, error)
}

// PaymentWriterSvc records payments
type PaymentWriterSvc interface {
	// RecordPayment atomically saves the payment, posts its credit and applies
	// every allocation. One invalid allocation aborts the whole operation.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.Payment, error)
}

// RefundSvc reverses payments
type RefundSvc interface {
	// RefundPayment posts a compensating debit and unwinds allocations most recent first.
	RefundPayment(ctx context.Context, paymentID string, req dto.RefundPaymentRequest) (*domain.PaymentRefund, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	RefundSvc
}
