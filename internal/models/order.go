package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the orders table row.
type Order struct {
	OrderID    string
	CustomerID string
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
