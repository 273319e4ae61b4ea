package models

import "time"

// Customer is the customers table row.
type Customer struct {
	CustomerID string
	Name       string
	Phone      *string // Nullable
	Email      *string // Nullable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
