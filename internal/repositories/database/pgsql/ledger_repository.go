package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `ledger_id, customer_id, opening_balance, current_balance, created_at, updated_at`

func (r queries) findLedger(ctx context.Context, query string, arg string) (*domain.LedgerAccount, error) {
	var m models.Ledger
	err := r.q.QueryRow(ctx, query, arg).
		Scan(&m.LedgerID, &m.CustomerID, &m.OpeningBalance, &m.CurrentBalance, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "ledger "+arg)
	}
	d := mapping.ToDomainLedger(m)
	return &d, nil
}

func (r queries) SaveLedger(ctx context.Context, ledger domain.LedgerAccount) error {
	m := mapping.ToModelLedger(ledger)
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledgers (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.LedgerID, m.CustomerID, m.OpeningBalance, m.CurrentBalance, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", m.LedgerID, mapPgError(err))
	}
	return nil
}

func (r queries) SaveLedgerIfAbsent(ctx context.Context, ledger domain.LedgerAccount) (bool, error) {
	m := mapping.ToModelLedger(ledger)
	tag, err := r.q.Exec(ctx, `
		INSERT INTO ledgers (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (customer_id) DO NOTHING;`,
		m.LedgerID, m.CustomerID, m.OpeningBalance, m.CurrentBalance, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to save ledger %s: %w", m.LedgerID, mapPgError(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r queries) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE ledger_id = $1;`, ledgerID)
}

func (r queries) FindLedgerByCustomerID(ctx context.Context, customerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE customer_id = $1;`, customerID)
}

func (r queries) FindLedgerByIDForUpdate(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE ledger_id = $1 FOR UPDATE;`, ledgerID)
}

func (r queries) FindLedgerByCustomerIDForUpdate(ctx context.Context, customerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE customer_id = $1 FOR UPDATE;`, customerID)
}

// AdjustLedgerBalance does the arithmetic in SQL so the row lock and the update are one statement.
func (r queries) AdjustLedgerBalance(ctx context.Context, ledgerID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE ledgers
		SET current_balance = COALESCE(current_balance, 0) + $2, updated_at = $3
		WHERE ledger_id = $1
		RETURNING current_balance;`, ledgerID, delta, now).Scan(&balance)
	if err != nil {
		return decimal.Zero, notFoundOr(err, "ledger "+ledgerID)
	}
	return balance, nil
}
