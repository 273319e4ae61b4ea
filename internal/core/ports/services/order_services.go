package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

// OrderSvcFacade defines order operations the ledger cares about
type OrderSvcFacade interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)

	// MarkOrderDelivered moves the order to delivered and, when no invoice exists
	// for it yet, posts a debit of the order total.
	MarkOrderDelivered(ctx context.Context, orderID string) (*domain.Order, error)
}
