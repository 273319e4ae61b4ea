package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// balanceMaintainer is the only code path that changes a ledger's current_balance.
// Every journal insert, update and delete goes through it inside the caller's
// transaction and is paired with exactly one balance adjustment.
// One maintainer serves one WithinTx call; committed reports its postings to
// metrics once the transaction has committed.
type balanceMaintainer struct {
	*BaseService
	posted []domain.LedgerTransaction
}

func newBalanceMaintainer(b *BaseService) *balanceMaintainer {
	return &balanceMaintainer{BaseService: b}
}

// committed counts the postings of a committed transaction.
func (m *balanceMaintainer) committed() {
	for _, e := range m.posted {
		m.metrics.ObservePosting(string(e.ReferenceType), string(e.TransactionType))
	}
	m.posted = nil
}

// insert saves entry and applies +signed(entry).
func (m *balanceMaintainer) insert(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerTransaction) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := m.lockLedgers(ctx, tx, entry.LedgerID); err != nil {
		return err
	}
	if err := tx.SaveLedgerTransaction(ctx, entry); err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	if err := m.adjust(ctx, tx, entry.LedgerID, entry.SignedAmount()); err != nil {
		return err
	}
	m.posted = append(m.posted, entry)
	m.LogDebug(ctx, "Journal entry posted",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("ledger_id", entry.LedgerID),
		slog.String("type", string(entry.TransactionType)),
		slog.String("amount", entry.Amount.String()))
	return nil
}

// update reverses signed(old) and then applies signed(updated), so a change of
// type or of ledger is handled the same way as a change of amount.
func (m *balanceMaintainer) update(ctx context.Context, tx portsrepo.Tx, old, updated domain.LedgerTransaction) error {
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := m.lockLedgers(ctx, tx, old.LedgerID, updated.LedgerID); err != nil {
		return err
	}
	if err := m.adjust(ctx, tx, old.LedgerID, old.SignedAmount().Neg()); err != nil {
		return err
	}
	if err := tx.UpdateLedgerTransaction(ctx, updated); err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", updated.TransactionID, err)
	}
	return m.adjust(ctx, tx, updated.LedgerID, updated.SignedAmount())
}

// remove deletes entry and applies -signed(entry).
func (m *balanceMaintainer) remove(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerTransaction) error {
	if err := m.lockLedgers(ctx, tx, entry.LedgerID); err != nil {
		return err
	}
	if err := tx.DeleteLedgerTransaction(ctx, entry.TransactionID); err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entry.TransactionID, err)
	}
	return m.adjust(ctx, tx, entry.LedgerID, entry.SignedAmount().Neg())
}

// lockLedgers takes the ledger row locks in id order.
func (m *balanceMaintainer) lockLedgers(ctx context.Context, tx portsrepo.Tx, ledgerIDs ...string) error {
	ids := append([]string(nil), ledgerIDs...)
	sort.Strings(ids)
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		if _, err := tx.FindLedgerByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("ledger %s: %w", id, domain.ErrLedgerMissing)
			}
			return fmt.Errorf("failed to lock ledger %s: %w", id, err)
		}
	}
	return nil
}

func (m *balanceMaintainer) adjust(ctx context.Context, tx portsrepo.Tx, ledgerID string, delta decimal.Decimal) error {
	if _, err := tx.AdjustLedgerBalance(ctx, ledgerID, delta, m.now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("ledger %s: %w", ledgerID, domain.ErrLedgerMissing)
		}
		return fmt.Errorf("failed to adjust balance of ledger %s: %w", ledgerID, err)
	}
	return nil
}

// ensureLedger returns the customer's ledger, creating a zero-balance one first if
// none exists. Invoice and delivered-order postings use it. A concurrent first
// posting that wins the insert is picked up by the locking re-read.
func (m *balanceMaintainer) ensureLedger(ctx context.Context, tx portsrepo.Tx, customerID string) (*domain.LedgerAccount, error) {
	ledger, err := tx.FindLedgerByCustomerIDForUpdate(ctx, customerID)
	if err == nil {
		return ledger, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find ledger of customer %s: %w", customerID, err)
	}
	created := domain.NewLedgerAccount(m.newID(), customerID, decimal.Zero, m.now())
	inserted, err := tx.SaveLedgerIfAbsent(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger of customer %s: %w", customerID, err)
	}
	if inserted {
		m.LogInfo(ctx, "Ledger created on first posting",
			slog.String("customer_id", customerID),
			slog.String("ledger_id", created.LedgerID))
		return &created, nil
	}
	ledger, err = tx.FindLedgerByCustomerIDForUpdate(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger of customer %s: %w", customerID, err)
	}
	return ledger, nil
}

// requireLedger returns the customer's ledger or ErrLedgerMissing.
func (m *balanceMaintainer) requireLedger(ctx context.Context, tx portsrepo.Tx, customerID string) (*domain.LedgerAccount, error) {
	ledger, err := tx.FindLedgerByCustomerIDForUpdate(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, domain.ErrLedgerMissing)
		}
		return nil, fmt.Errorf("failed to find ledger of customer %s: %w", customerID, err)
	}
	return ledger, nil
}

// newEntry builds a journal entry stamped with the service clock.
func (m *balanceMaintainer) newEntry(ledgerID string, amount decimal.Decimal, typ domain.TransactionType, ref domain.ReferenceType, refID, description string) domain.LedgerTransaction {
	now := m.now()
	return domain.LedgerTransaction{
		TransactionID:   m.newID(),
		LedgerID:        ledgerID,
		Amount:          amount,
		TransactionType: typ,
		ReferenceType:   ref,
		ReferenceID:     refID,
		Description:     description,
		TransactionDate: now,
		CreatedAt:       now,
	}
}
