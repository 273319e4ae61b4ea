package dto

import (
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to create an order.
type CreateOrderRequest struct {
	CustomerID string          `json:"customer_id" binding:"required"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status" binding:"omitempty,oneof=pending confirmed"`
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:    o.OrderID,
		CustomerID: o.CustomerID,
		Total:      o.Total,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
