package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

func (r queries) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (customer_id, name, phone, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?);`,
		m.CustomerID, m.Name, m.Phone, m.Email, formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var m models.Customer
	err := r.q.QueryRowContext(ctx, `
		SELECT customer_id, name, phone, email, created_at, updated_at
		FROM customers WHERE customer_id = ?;`, customerID).
		Scan(&m.CustomerID, &m.Name, &m.Phone, &m.Email, timeCol{&m.CreatedAt}, timeCol{&m.UpdatedAt})
	if err != nil {
		return nil, notFoundOr(err, "customer "+customerID)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}
