package mapping

import (
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
)

// ToModelLedger converts a domain LedgerAccount to a model Ledger
func ToModelLedger(d domain.LedgerAccount) models.Ledger {
	return models.Ledger{
		LedgerID:       d.LedgerID,
		CustomerID:     d.CustomerID,
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainLedger converts a model Ledger to a domain LedgerAccount
func ToDomainLedger(m models.Ledger) domain.LedgerAccount {
	return domain.LedgerAccount{
		LedgerID:       m.LedgerID,
		CustomerID:     m.CustomerID,
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToDomainCustomerBalances converts joined balance rows
func ToDomainCustomerBalances(ms []models.CustomerBalance) []domain.CustomerBalance {
	ds := make([]domain.CustomerBalance, len(ms))
	for i, m := range ms {
		ds[i] = domain.CustomerBalance{
			CustomerID:     m.CustomerID,
			CustomerName:   m.CustomerName,
			LedgerID:       m.LedgerID,
			CurrentBalance: m.CurrentBalance,
		}
	}
	return ds
}

// ToModelLedgerTransaction converts a domain LedgerTransaction to a model LedgerTransaction
func ToModelLedgerTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID:   d.TransactionID,
		LedgerID:        d.LedgerID,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		ReferenceType:   NullableString(string(d.ReferenceType)),
		ReferenceID:     NullableString(d.ReferenceID),
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainLedgerTransaction converts a model LedgerTransaction to a domain LedgerTransaction
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID:   m.TransactionID,
		LedgerID:        m.LedgerID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		ReferenceType:   domain.ReferenceType(StringValue(m.ReferenceType)),
		ReferenceID:     StringValue(m.ReferenceID),
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainLedgerTransactionSlice converts a slice of model entries
func ToDomainLedgerTransactionSlice(ms []models.LedgerTransaction) []domain.LedgerTransaction {
	ds := make([]domain.LedgerTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerTransaction(m)
	}
	return ds
}
