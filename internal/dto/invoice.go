package dto

import (
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueInvoiceRequest defines the data needed to issue an invoice.
type IssueInvoiceRequest struct {
	CustomerID string           `json:"customer_id" binding:"required"`
	OrderID    *string          `json:"order_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Tax        *decimal.Decimal `json:"tax"`
	IssueDate  *time.Time       `json:"issue_date"` // Defaults to now
	DueDate    *time.Time       `json:"due_date"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID   string          `json:"invoice_id"`
	CustomerID  string          `json:"customer_id"`
	OrderID     string          `json:"order_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      string          `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		CustomerID:  inv.CustomerID,
		OrderID:     inv.OrderID,
		Amount:      inv.Amount,
		Tax:         inv.Tax,
		Total:       inv.Total(),
		AmountPaid:  inv.AmountPaid,
		Outstanding: inv.Outstanding(),
		Status:      string(inv.Status),
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
