package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerSummary is the portfolio-wide rollup over every ledger account.
type LedgerSummary struct {
	TotalCustomers               int             `json:"total_customers"`
	CustomersWithPositiveBalance int             `json:"customers_with_positive_balance"`
	CustomersWithNegativeBalance int             `json:"customers_with_negative_balance"`
	CustomersWithZeroBalance     int             `json:"customers_with_zero_balance"`
	TotalOutstandingReceivables  decimal.Decimal `json:"total_outstanding_receivables"`
	TotalOutstandingPayables     decimal.Decimal `json:"total_outstanding_payables"`
	NetPosition                  decimal.Decimal `json:"net_position"`
}

// CustomerBalance is a ledger joined with its customer's name.
type CustomerBalance struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	LedgerID       string          `json:"ledger_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// AgingBucket is one age window of a customer's debits.
type AgingBucket struct {
	Label   string          `json:"label"` // e.g. days_0_30, days_over_90
	FromDay int             `json:"from_day"`
	ToDay   int             `json:"to_day"` // -1 for the open-ended last bucket
	Amount  decimal.Decimal `json:"amount"`
}

// AgingRow is a customer with a positive balance and its debits bucketed by age.
type AgingRow struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	Buckets        []AgingBucket   `json:"buckets"`
}
