package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
	"github.com/SscSPs/shopledger/internal/utils/mapping"
)

const orderColumns = `order_id, customer_id, total, status, created_at, updated_at`

func (r queries) SaveOrder(ctx context.Context, order domain.Order) error {
	m := mapping.ToModelOrder(order)
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?);`,
		m.OrderID, m.CustomerID, money(m.Total), m.Status, formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", m.OrderID, mapSQLiteError(err))
	}
	return nil
}

func (r queries) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var m models.Order
	err := r.q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = ?;`, orderID).
		Scan(&m.OrderID, &m.CustomerID, &m.Total, &m.Status, timeCol{&m.CreatedAt}, timeCol{&m.UpdatedAt})
	if err != nil {
		return nil, notFoundOr(err, "order "+orderID)
	}
	d := mapping.ToDomainOrder(m)
	return &d, nil
}

func (r queries) FindOrderByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.FindOrderByID(ctx, orderID)
}

func (r queries) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?;`,
		string(status), formatTime(now), orderID)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, mapSQLiteError(err))
	}
	return requireAffected(res, "order "+orderID)
}
