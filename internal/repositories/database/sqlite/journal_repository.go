package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

const journalColumns = `transaction_id, ledger_id, amount, transaction_type, reference_type, reference_id,
	description, transaction_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLedgerTransaction(row rowScanner) (models.LedgerTransaction, error) {
	var m models.LedgerTransaction
	err := row.Scan(&m.TransactionID, &m.LedgerID, &m.Amount, &m.TransactionType, &m.ReferenceType,
		&m.ReferenceID, &m.Description, timeCol{&m.TransactionDate}, timeCol{&m.CreatedAt})
	return m, err
}

func collectLedgerTransactions(rows *sql.Rows) ([]domain.LedgerTransaction, error) {
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
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO ledger_transactions (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.TransactionID, m.LedgerID, money(m.Amount), m.TransactionType, m.ReferenceType, m.ReferenceID,
		m.Description, formatTime(m.TransactionDate), formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save ledger transaction %s: %w", m.TransactionID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) FindLedgerTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	m, err := scanLedgerTransaction(r.q.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM ledger_transactions WHERE transaction_id = ?;`, transactionID))
	if err != nil {
		return nil, notFoundOr(err, "ledger transaction "+transactionID)
	}
	d := mapping.ToDomainLedgerTransaction(m)
	return &d, nil
}

func (r queries) FindLedgerTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	return r.FindLedgerTransactionByID(ctx, transactionID)
}

func (r queries) UpdateLedgerTransaction(ctx context.Context, entry domain.LedgerTransaction) error {
	m := mapping.ToModelLedgerTransaction(entry)
	res, err := r.q.ExecContext(ctx, `
		UPDATE ledger_transactions
		SET amount = ?, transaction_type = ?, description = ?, transaction_date = ?
		WHERE transaction_id = ?;`,
		money(m.Amount), m.TransactionType, m.Description, formatTime(m.TransactionDate), m.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to update ledger transaction %s: %w", m.TransactionID, mapSQLiteError(err))
	}
	return requireAffected(res, "ledger transaction "+m.TransactionID)
}

func (r queries) DeleteLedgerTransaction(ctx context.Context, transactionID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM ledger_transactions WHERE transaction_id = ?;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger transaction %s: %w", transactionID, mapSQLiteError(err))
	}
	return requireAffected(res, "ledger transaction "+transactionID)
}

func (r queries) ListLedgerTransactions(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.LedgerTransaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + journalColumns + ` FROM ledger_transactions WHERE ledger_id = ?`)
	args := []any{filter.LedgerID}
	if filter.From != nil {
		sb.WriteString(" AND transaction_date >= ?")
		args = append(args, formatTime(*filter.From))
	}
	if filter.Until != nil {
		sb.WriteString(" AND transaction_date < ?")
		args = append(args, formatTime(*filter.Until))
	}
	if filter.After != nil {
		sb.WriteString(" AND (transaction_date, created_at, transaction_id) > (?, ?, ?)")
		args = append(args, formatTime(filter.After.TransactionDate), formatTime(filter.After.CreatedAt), filter.After.TransactionID)
	}
	sb.WriteString(" ORDER BY transaction_date ASC, created_at ASC, transaction_id ASC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.q.QueryContext(ctx, sb.String()+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger transactions for %s: %w", filter.LedgerID, mapSQLiteError(err))
	}
	return collectLedgerTransactions(rows)
}
