package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

func (r queries) ListCustomerBalances(ctx context.Context) ([]domain.CustomerBalance, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT c.customer_id, c.name, l.ledger_id, l.current_balance
		FROM ledgers l
		JOIN customers c ON c.customer_id = l.customer_id
		ORDER BY c.customer_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer balances: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	var ms []models.CustomerBalance
	for rows.Next() {
		var m models.CustomerBalance
		if err := rows.Scan(&m.CustomerID, &m.CustomerName, &m.LedgerID, &m.CurrentBalance); err != nil {
			return nil, fmt.Errorf("failed to scan customer balance: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer balances: %w", err)
	}
	return mapping.ToDomainCustomerBalances(ms), nil
}

func (r queries) ListDebitEntries(ctx context.Context, ledgerIDs []string) ([]domain.LedgerTransaction, error) {
	if len(ledgerIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ledgerIDs)), ", ")
	args := make([]any, len(ledgerIDs))
	for i, id := range ledgerIDs {
		args[i] = id
	}
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+journalColumns+`
		FROM ledger_transactions
		WHERE ledger_id IN (`+placeholders+`) AND transaction_type = 'debit'
		ORDER BY ledger_id, transaction_date ASC, created_at ASC, transaction_id ASC;`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debit entries: %w", mapSQLiteError(err))
	}
	return collectLedgerTransactions(rows)
}
