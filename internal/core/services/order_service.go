package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/dto"
)

type orderService struct {
	BaseService
	store portsrepo.Store
}

// NewOrderService creates the order service.
func NewOrderService(store portsrepo.Store, opts ...ServiceOption) portssvc.OrderSvcFacade {
	return &orderService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected order")
		return nil, err
	}
	if err := domain.ValidateAmount(req.Total); err != nil {
		return nil, fmt.Errorf("%w: order total %v", apperrors.ErrValidation, err)
	}

	now := s.now()
	order := domain.Order{
		OrderID:    s.newID(),
		CustomerID: req.CustomerID,
		Total:      req.Total,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Status != "" {
		order.Status = domain.OrderStatus(req.Status)
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := tx.FindCustomerByID(ctx, order.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("customer " + order.CustomerID)
			}
			return err
		}
		return tx.SaveOrder(ctx, order)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create order", slog.String("customer_id", order.CustomerID))
		return nil, err
	}

	s.LogInfo(ctx, "Order created", slog.String("order_id", order.OrderID), slog.String("total", order.Total.String()))
	return &order, nil
}

// MarkOrderDelivered posts the delivery receivable only on the transition into
// delivered and only while no invoice references the order.
func (s *orderService) MarkOrderDelivered(ctx context.Context, orderID string) (*domain.Order, error) {
	defer s.metrics.Track("mark_order_delivered")()

	poster := newBalanceMaintainer(&s.BaseService)
	var result domain.Order
	posted := false
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		order, err := tx.FindOrderByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("order " + orderID)
			}
			return err
		}
		switch order.Status {
		case domain.OrderDelivered:
			result = *order
			return nil
		case domain.OrderCancelled:
			return apperrors.NewValidationError("cancelled order " + orderID + " cannot be delivered")
		}

		now := s.now()
		if err := tx.UpdateOrderStatus(ctx, orderID, domain.OrderDelivered, now); err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = domain.OrderDelivered
		order.UpdatedAt = now
		result = *order

		invoiced, err := tx.InvoiceExistsForOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to check invoices of order: %w", err)
		}
		if invoiced {
			return nil
		}

		ledger, err := poster.ensureLedger(ctx, tx, order.CustomerID)
		if err != nil {
			return err
		}
		entry := poster.newEntry(ledger.LedgerID, order.Total, domain.Debit, domain.RefOrder, orderID,
			fmt.Sprintf("Order %s delivered", orderID))
		if err := poster.insert(ctx, tx, entry); err != nil {
			return err
		}
		posted = true
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to mark order delivered", slog.String("order_id", orderID))
		return nil, err
	}

	poster.committed()
	s.LogInfo(ctx, "Order delivered", slog.String("order_id", orderID), slog.Bool("receivable_posted", posted))
	return &result, nil
}
