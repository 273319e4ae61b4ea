package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

const orderColumns = `order_id, customer_id, total, status, created_at, updated_at`

func (r queries) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.OrderID, m.CustomerID, m.Total, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", m.OrderID, mapPgError(err))
	}
	return nil
}

func (r queries) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID)
}

func (r queries) FindOrderByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE;`, orderID)
}

func (r queries) findOrder(ctx context.Context, query, orderID string) (*domain.Order, error) {
	var m models.Order
	err := r.q.QueryRow(ctx, query, orderID).
		Scan(&m.OrderID, &m.CustomerID, &m.Total, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "order "+orderID)
	}
	d := mapping.ToDomainOrder(m)
	return &d, nil
}

func (r queries) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, now time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE order_id = $1;`,
		orderID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}
	return nil
}
