package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

func (r queries) ListCustomerBalances(ctx context.Context) ([]domain.CustomerBalance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.customer_id, c.name, l.ledger_id, l.current_balance
		FROM ledgers l
		JOIN customers c ON c.customer_id = l.customer_id
		ORDER BY c.customer_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer balances: %w", mapPgError(err))
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

// ListDebitEntries returns the debit entries of the given ledgers, oldest first.
func (r queries) ListDebitEntries(ctx context.Context, ledgerIDs []string) ([]domain.LedgerTransaction, error) {
	if len(ledgerIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+journalColumns+`
		FROM ledger_transactions
		WHERE ledger_id = ANY($1) AND transaction_type = 'debit'
		ORDER BY ledger_id, transaction_date ASC, created_at ASC, transaction_id ASC;`, ledgerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list debit entries: %w", mapPgError(err))
	}
	return collectLedgerTransactions(rows)
}
