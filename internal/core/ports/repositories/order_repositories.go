package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
)

// OrderReader defines read operations for orders
type OrderReader interface {
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderTxSupport defines order mutations
type OrderTxSupport interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	FindOrderByIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, now time.Time) error
}
