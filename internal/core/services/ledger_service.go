package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/utils/pagination"
)

type ledgerService struct {
	BaseService
	store portsrepo.Store
}

// NewLedgerService creates the journal service for manual entries and listings.
func NewLedgerService(store portsrepo.Store, opts ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) entryFromRequest(req dto.LedgerTransactionRequest) (domain.TransactionType, time.Time, error) {
	if err := validateRequest(req); err != nil {
		return "", time.Time{}, err
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	date := s.now()
	if req.TransactionDate != nil {
		date = req.TransactionDate.UTC()
	}
	return domain.TransactionType(req.Type), date, nil
}

func (s *ledgerService) PostLedgerTransaction(ctx context.Context, ledgerID string, req dto.LedgerTransactionRequest) (*domain.LedgerTransaction, error) {
	defer s.metrics.Track("post_ledger_transaction")()

	typ, date, err := s.entryFromRequest(req)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected journal entry", slog.String("ledger_id", ledgerID))
		return nil, err
	}

	poster := newBalanceMaintainer(&s.BaseService)
	entry := poster.newEntry(ledgerID, req.Amount, typ, domain.RefNone, "", req.Description)
	entry.TransactionDate = date

	err = s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := tx.FindLedgerByIDForUpdate(ctx, ledgerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("ledger " + ledgerID)
			}
			return err
		}
		return poster.insert(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("ledger_id", ledgerID))
		return nil, err
	}

	poster.committed()
	s.LogInfo(ctx, "Manual journal entry posted",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("ledger_id", ledgerID),
		slog.String("type", string(entry.TransactionType)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

// CorrectLedgerTransaction rewrites a manual entry through the reverse-then-reapply path.
func (s *ledgerService) CorrectLedgerTransaction(ctx context.Context, transactionID string, req dto.LedgerTransactionRequest) (*domain.LedgerTransaction, error) {
	defer s.metrics.Track("correct_ledger_transaction")()

	typ, date, err := s.entryFromRequest(req)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected journal correction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	poster := newBalanceMaintainer(&s.BaseService)
	var updated domain.LedgerTransaction
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		old, err := s.lockManualEntry(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		updated = *old
		updated.Amount = req.Amount
		updated.TransactionType = typ
		updated.Description = req.Description
		updated.TransactionDate = date
		return poster.update(ctx, tx, *old, updated)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to correct journal entry", slog.String("transaction_id", transactionID))
		return nil, err
	}

	poster.committed()
	s.LogInfo(ctx, "Journal entry corrected",
		slog.String("transaction_id", transactionID),
		slog.String("type", string(updated.TransactionType)),
		slog.String("amount", updated.Amount.String()))
	return &updated, nil
}

func (s *ledgerService) VoidLedgerTransaction(ctx context.Context, transactionID string) error {
	defer s.metrics.Track("void_ledger_transaction")()

	poster := newBalanceMaintainer(&s.BaseService)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		entry, err := s.lockManualEntry(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		return poster.remove(ctx, tx, *entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void journal entry", slog.String("transaction_id", transactionID))
		return err
	}

	poster.committed()
	s.LogInfo(ctx, "Journal entry voided", slog.String("transaction_id", transactionID))
	return nil
}

// lockManualEntry loads an entry for mutation; source document entries are refused.
func (s *ledgerService) lockManualEntry(ctx context.Context, tx portsrepo.Tx, transactionID string) (*domain.LedgerTransaction, error) {
	entry, err := tx.FindLedgerTransactionByIDForUpdate(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("ledger transaction " + transactionID)
		}
		return nil, err
	}
	if !entry.IsManual() {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrSourceEntryImmutable, entry.ReferenceType, entry.ReferenceID)
	}
	return entry, nil
}

// ListLedgerTransactions returns the journal in posting order. With a limit the
// response carries a next token while more entries remain.
func (s *ledgerService) ListLedgerTransactions(ctx context.Context, ledgerID string, params dto.ListLedgerTransactionsParams) (*dto.ListLedgerTransactionsResponse, error) {
	if _, err := s.store.FindLedgerByID(ctx, ledgerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("ledger " + ledgerID)
		}
		return nil, err
	}
	if params.Limit < 0 {
		return nil, apperrors.NewValidationError("limit must not be negative")
	}

	filter := portsrepo.JournalFilter{LedgerID: ledgerID, From: params.From}
	if params.To != nil {
		until := truncateToDay(*params.To).AddDate(0, 0, 1)
		filter.Until = &until
	}
	if params.From != nil && filter.Until != nil && !params.From.Before(*filter.Until) {
		return nil, apperrors.NewValidationError("from must not be after to")
	}
	if params.NextToken != nil && *params.NextToken != "" {
		date, createdAt, id, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		filter.After = &portsrepo.JournalCursor{TransactionDate: date, CreatedAt: createdAt, TransactionID: id}
	}
	if params.Limit > 0 {
		filter.Limit = params.Limit + 1
	}

	entries, err := s.store.ListLedgerTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal", slog.String("ledger_id", ledgerID))
		return nil, err
	}

	resp := &dto.ListLedgerTransactionsResponse{}
	if params.Limit > 0 && len(entries) > params.Limit {
		entries = entries[:params.Limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt, last.TransactionID)
		resp.NextToken = &token
	}
	resp.Transactions = dto.ToLedgerTransactionResponses(entries)
	return resp, nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
