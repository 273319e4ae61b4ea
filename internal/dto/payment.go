package dto

import (
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationRequest applies part of a payment to one invoice.
type AllocationRequest struct {
	InvoiceID string           `json:"invoice_id" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
}

// RecordPaymentRequest defines a payment with optional invoice allocations.
type RecordPaymentRequest struct {
	CustomerID      string              `json:"customer_id" binding:"required"`
	Amount          decimal.Decimal     `json:"amount"`
	PaymentMethod   string              `json:"payment_method" binding:"required,max=50"`
	ReferenceNumber string              `json:"reference_number" binding:"omitempty,max=100"`
	Notes           string              `json:"notes"`
	PaymentDate     *time.Time          `json:"payment_date"` // Defaults to now
	Allocations     []AllocationRequest `json:"allocations" binding:"omitempty,dive"`
}

// RefundPaymentRequest reverses part or all of a payment. A nil amount refunds the full payment.
type RefundPaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Reason string           `json:"reason" binding:"omitempty,max=500"`
}

// AllocationResponse defines the data returned for a payment allocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocation_id"`
	InvoiceID    string          `json:"invoice_id"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// RefundResponse defines the data returned for a refund.
type RefundResponse struct {
	RefundID  string          `json:"refund_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string               `json:"payment_id"`
	CustomerID      string               `json:"customer_id"`
	Amount          decimal.Decimal      `json:"amount"`
	RefundedAmount  decimal.Decimal      `json:"refunded_amount"`
	PaymentMethod   string               `json:"payment_method"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	PaymentDate     time.Time            `json:"payment_date"`
	CreatedAt       time.Time            `json:"created_at"`
	Allocations     []AllocationResponse `json:"allocations"`
	Refunds         []RefundResponse     `json:"refunds"`
}

// ToRefundResponse converts a domain.PaymentRefund to RefundResponse DTO
func ToRefundResponse(r *domain.PaymentRefund) RefundResponse {
	return RefundResponse{
		RefundID:  r.RefundID,
		PaymentID: r.PaymentID,
		Amount:    r.Amount,
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

// ToPaymentResponse converts a payment and its dependents to PaymentResponse DTO
func ToPaymentResponse(d *domain.PaymentDetails) PaymentResponse {
	allocations := make([]AllocationResponse, len(d.Allocations))
	for i, a := range d.Allocations {
		allocations[i] = AllocationResponse{
			AllocationID: a.AllocationID,
			InvoiceID:    a.InvoiceID,
			Amount:       a.Amount,
			CreatedAt:    a.CreatedAt,
		}
	}
	refunds := make([]RefundResponse, len(d.Refunds))
	for i := range d.Refunds {
		refunds[i] = ToRefundResponse(&d.Refunds[i])
	}
	p := d.Payment
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		RefundedAmount:  d.RefundedAmount(),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		PaymentDate:     p.PaymentDate,
		CreatedAt:       p.CreatedAt,
		Allocations:     allocations,
		Refunds:         refunds,
	}
}
