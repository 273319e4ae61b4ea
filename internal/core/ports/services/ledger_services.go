package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

// LedgerReaderSvc defines read operations on the journal
type LedgerReaderSvc interface {
	ListLedgerTransactions(ctx context.Context, ledgerID string, params dto.ListLedgerTransactionsParams) (*dto.ListLedgerTransactionsResponse, error)
}

// LedgerWriterSvc defines manual journal operations. Entries produced by a
// source document cannot be corrected or voided here.
type LedgerWriterSvc interface {
	PostLedgerTransaction(ctx context.Context, ledgerID string, req dto.LedgerTransactionRequest) (*domain.LedgerTransaction, error)
	CorrectLedgerTransaction(ctx context.Context, transactionID string, req dto.LedgerTransactionRequest) (*domain.LedgerTransaction, error)
	VoidLedgerTransaction(ctx context.Context, transactionID string) error
}

// LedgerSvcFacade combines all journal-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
