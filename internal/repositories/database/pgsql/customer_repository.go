package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

func (r queries) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (customer_id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.CustomerID, m.Name, m.Phone, m.Email, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, mapPgError(err))
	}
	return nil
}

func (r queries) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var m models.Customer
	err := r.q.QueryRow(ctx, `
		SELECT customer_id, name, phone, email, created_at, updated_at
		FROM customers
		WHERE customer_id = $1;`, customerID).
		Scan(&m.CustomerID, &m.Name, &m.Phone, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "customer "+customerID)
	}
	d := mapping.ToDomainCustomer(m)
	return &d, nil
}
