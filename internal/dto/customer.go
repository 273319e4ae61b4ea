package dto

import (
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer and its ledger.
type CreateCustomerRequest struct {
	Name           string           `json:"name" binding:"required,max=200"`
	Phone          string           `json:"phone" binding:"omitempty,max=32"`
	Email          string           `json:"email" binding:"omitempty,email"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"` // Optional, defaults to zero
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LedgerResponse defines the data returned for a ledger account.
type LedgerResponse struct {
	LedgerID       string          `json:"ledger_id"`
	CustomerID     string          `json:"customer_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToLedgerResponse converts a domain.LedgerAccount to LedgerResponse DTO
func ToLedgerResponse(l *domain.LedgerAccount) LedgerResponse {
	return LedgerResponse{
		LedgerID:       l.LedgerID,
		CustomerID:     l.CustomerID,
		OpeningBalance: l.OpeningBalance,
		CurrentBalance: l.CurrentBalance,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
