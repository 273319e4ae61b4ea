package repositories

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments and their dependents
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)
	ListRefundsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentRefund, error)
}

// PaymentTxSupport defines payment, allocation and refund mutations
type PaymentTxSupport interface {
	SavePayment(ctx context.Context, payment domain.Payment) error
	FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error)

	SaveAllocation(ctx context.Context, allocation domain.PaymentAllocation) error

	// ListAllocationsForUnwind returns the payment's allocations most recent first
	// (created_at DESC, allocation_id DESC).
	ListAllocationsForUnwind(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)
	DeleteAllocation(ctx context.Context, allocationID string) error
	UpdateAllocationAmount(ctx context.Context, allocationID string, amount decimal.Decimal) error

	SaveRefund(ctx context.Context, refund domain.PaymentRefund) error
	SumRefundsByPayment(ctx context.Context, paymentID string) (decimal.Decimal, error)
}
