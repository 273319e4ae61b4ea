package sqlite

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

func (r queries) SaveLedger(ctx context.Context, ledger domain.LedgerAccount) error {
	m := mapping.ToModelLedger(ledger)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO ledgers (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?);`,
		m.LedgerID, m.CustomerID, money(m.OpeningBalance), money(m.CurrentBalance),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", m.LedgerID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) SaveLedgerIfAbsent(ctx context.Context, ledger domain.LedgerAccount) (bool, error) {
	m := mapping.ToModelLedger(ledger)
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO ledgers (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (customer_id) DO NOTHING;`,
		m.LedgerID, m.CustomerID, money(m.OpeningBalance), money(m.CurrentBalance),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return false, fmt.Errorf("failed to save ledger %s: %w", m.LedgerID, mapSQLiteError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

func (r queries) findLedger(ctx context.Context, where, arg string) (*domain.LedgerAccount, error) {
	var m models.Ledger
	err := r.q.QueryRowContext(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE `+where+` = ?;`, arg).
		Scan(&m.LedgerID, &m.CustomerID, &m.OpeningBalance, &m.CurrentBalance, timeCol{&m.CreatedAt}, timeCol{&m.UpdatedAt})
	if err != nil {
		return nil, notFoundOr(err, "ledger "+arg)
	}
	d := mapping.ToDomainLedger(m)
	return &d, nil
}

func (r queries) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, "ledger_id", ledgerID)
}

func (r queries) FindLedgerByCustomerID(ctx context.Context, customerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, "customer_id", customerID)
}

// FindLedgerByIDForUpdate is a plain read: the immediate transaction already holds the write lock.
func (r queries) FindLedgerByIDForUpdate(ctx context.Context, ledgerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, "ledger_id", ledgerID)
}

func (r queries) FindLedgerByCustomerIDForUpdate(ctx context.Context, customerID string) (*domain.LedgerAccount, error) {
	return r.findLedger(ctx, "customer_id", customerID)
}

// AdjustLedgerBalance reads, adds and writes back in Go since SQLite has no exact decimal type.
func (r queries) AdjustLedgerBalance(ctx context.Context, ledgerID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	var current decimal.NullDecimal
	err := r.q.QueryRowContext(ctx, `SELECT current_balance FROM ledgers WHERE ledger_id = ?;`, ledgerID).Scan(&current)
	if err != nil {
		return decimal.Zero, notFoundOr(err, "ledger "+ledgerID)
	}
	balance := current.Decimal.Add(delta)

	res, err := r.q.ExecContext(ctx, `UPDATE ledgers SET current_balance = ?, updated_at = ? WHERE ledger_id = ?;`,
		money(balance), formatTime(now), ledgerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust balance of ledger %s: %w", ledgerID, mapSQLiteError(err))
	}
	if err := requireAffected(res, "ledger "+ledgerID); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
