package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `transaction_id, ledger_id, amount, transaction_type, reference_type, reference_id,
	description, transaction_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerTransaction(row rowScanner) (models.LedgerTransaction, error) {
	var m models.LedgerTransaction
	err := row.Scan(&m.TransactionID, &m.LedgerID, &m.Amount, &m.TransactionType, &m.ReferenceType,
		&m.ReferenceID, &m.Description, &m.TransactionDate, &m.CreatedAt)
	return m, err
}

func collectLedgerTransactions(rows pgx.Rows) ([]domain.LedgerTransaction, error) {
	defer rows.Close()
	var ms []models.LedgerTransaction
	for rows.Next() {
		m, err := scanLedgerTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger transaction: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger transactions: %w", err)
	}
	return mapping.ToDomainLedgerTransactionSlice(ms), nil
}

func (r queries) SaveLedgerTransaction(ctx context.Context, entry domain.LedgerTransaction) error {
	m := mapping.ToModelLedgerTransaction(entry)
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_transactions (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.TransactionID, m.LedgerID, m.Amount, m.TransactionType, m.ReferenceType, m.ReferenceID,
		m.Description, m.TransactionDate, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save ledger transaction %s: %w", m.TransactionID, mapPgError(err))
	}
	return nil
}

func (r queries) FindLedgerTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	return r.findLedgerTransaction(ctx, `SELECT `+journalColumns+` FROM ledger_transactions WHERE transaction_id = $1;`, transactionID)
}

func (r queries) FindLedgerTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	return r.findLedgerTransaction(ctx, `SELECT `+journalColumns+` FROM ledger_transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID)
}

func (r queries) findLedgerTransaction(ctx context.Context, query, transactionID string) (*domain.LedgerTransaction, error) {
	m, err := scanLedgerTransaction(r.q.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "ledger transaction "+transactionID)
	}
	d := mapping.ToDomainLedgerTransaction(m)
	return &d, nil
}

func (r queries) UpdateLedgerTransaction(ctx context.Context, entry domain.LedgerTransaction) error {
	m := mapping.ToModelLedgerTransaction(entry)
	tag, err := r.q.Exec(ctx, `
		UPDATE ledger_transactions
		SET amount = $2, transaction_type = $3, description = $4, transaction_date = $5
		WHERE transaction_id = $1;`,
		m.TransactionID, m.Amount, m.TransactionType, m.Description, m.TransactionDate)
	if err != nil {
		return fmt.Errorf("failed to update ledger transaction %s: %w", m.TransactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r queries) DeleteLedgerTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM ledger_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger transaction %s: %w", transactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

// ListLedgerTransactions returns entries in (transaction_date, created_at, transaction_id) order,
// resuming strictly after filter.After when set.
func (r queries) ListLedgerTransactions(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.LedgerTransaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + journalColumns + ` FROM ledger_transactions WHERE ledger_id = $1`)
	args := []any{filter.LedgerID}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.From != nil {
		sb.WriteString(" AND transaction_date >= " + next(*filter.From))
	}
	if filter.Until != nil {
		sb.WriteString(" AND transaction_date < " + next(*filter.Until))
	}
	if filter.After != nil {
		sb.WriteString(fmt.Sprintf(" AND (transaction_date, created_at, transaction_id) > (%s, %s, %s)",
			next(filter.After.TransactionDate), next(filter.After.CreatedAt), next(filter.After.TransactionID)))
	}
	sb.WriteString(" ORDER BY transaction_date ASC, created_at ASC, transaction_id ASC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + next(filter.Limit))
	}

	rows, err := r.q.Query(ctx, sb.String()+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger transactions for %s: %w", filter.LedgerID, mapPgError(err))
	}
	return collectLedgerTransactions(rows)
}
