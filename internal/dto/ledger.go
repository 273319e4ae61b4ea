package dto

import (
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTransactionRequest defines a manual journal entry, or its correction.
type LedgerTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type" binding:"required,oneof=debit credit"`
	Description     string          `json:"description" binding:"max=500"`
	TransactionDate *time.Time      `json:"transaction_date"` // Defaults to now
}

// ListLedgerTransactionsParams defines query parameters for listing a ledger's journal.
type ListLedgerTransactionsParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string    `form:"nextToken"`
}

// LedgerTransactionResponse defines the data returned for a journal entry.
type LedgerTransactionResponse struct {
	TransactionID   string          `json:"transaction_id"`
	LedgerID        string          `json:"ledger_id"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ListLedgerTransactionsResponse wraps a page of journal entries.
type ListLedgerTransactionsResponse struct {
	Transactions []LedgerTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"next_token,omitempty"`
}

// ToLedgerTransactionResponse converts a domain.LedgerTransaction to its DTO
func ToLedgerTransactionResponse(t *domain.LedgerTransaction) LedgerTransactionResponse {
	return LedgerTransactionResponse{
		TransactionID:   t.TransactionID,
		LedgerID:        t.LedgerID,
		Amount:          t.Amount,
		Type:            string(t.TransactionType),
		ReferenceType:   string(t.ReferenceType),
		ReferenceID:     t.ReferenceID,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
	}
}

// ToLedgerTransactionResponses converts a slice of journal entries.
func ToLedgerTransactionResponses(txns []domain.LedgerTransaction) []LedgerTransactionResponse {
	res := make([]LedgerTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToLedgerTransactionResponse(&txns[i])
	}
	return res
}
