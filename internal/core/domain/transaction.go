package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a journal entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "debit"  // increases what the customer owes
	Credit TransactionType = "credit" // decreases what the customer owes
)

// IsValid reports whether t is one of the known entry types.
func (t TransactionType) IsValid() bool {
	return t == Debit || t == Credit
}

// ReferenceType names the source document that produced a journal entry.
// The empty value marks a manual entry.
type ReferenceType string

const (
	RefNone          ReferenceType = ""
	RefInvoice       ReferenceType = "invoice"
	RefPayment       ReferenceType = "payment"
	RefOrder         ReferenceType = "order"
	RefPaymentRefund ReferenceType = "payment_refund"
)

// IsValid reports whether r is a known reference type (including none).
func (r ReferenceType) IsValid() bool {
	switch r {
	case RefNone, RefInvoice, RefPayment, RefOrder, RefPaymentRefund:
		return true
	}
	return false
}

// LedgerTransaction is a single signed posting against a ledger account.
type LedgerTransaction struct {
	TransactionID   string          `json:"transaction_id"`
	LedgerID        string          `json:"ledger_id"`
	Amount          decimal.Decimal `json:"amount"` // always positive
	TransactionType TransactionType `json:"type"`
	ReferenceType   ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedAmount is +amount for a debit and -amount for a credit.
func (t LedgerTransaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Credit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsManual reports whether the entry was posted by an operator rather than a source document.
func (t LedgerTransaction) IsManual() bool {
	return t.ReferenceType == RefNone
}

// Validate checks the fields the balance maintainer relies on.
func (t LedgerTransaction) Validate() error {
	if t.LedgerID == "" {
		return fmt.Errorf("ledger ID is required")
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("unknown transaction type '%s'", t.TransactionType)
	}
	if !t.ReferenceType.IsValid() {
		return fmt.Errorf("unknown reference type '%s'", t.ReferenceType)
	}
	if t.ReferenceType != RefNone && t.ReferenceID == "" {
		return fmt.Errorf("reference ID is required for reference type '%s'", t.ReferenceType)
	}
	return nil
}

// ValidateAmount rejects non-positive amounts and amounts with more than two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("amount %s has more than two decimal places", amount.String())
	}
	return nil
}
