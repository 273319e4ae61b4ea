package dto

import (
	"encoding/json"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSummaryResponse is the portfolio rollup.
type LedgerSummaryResponse struct {
	TotalCustomers               int             `json:"total_customers"`
	CustomersWithPositiveBalance int             `json:"customers_with_positive_balance"`
	CustomersWithNegativeBalance int             `json:"customers_with_negative_balance"`
	CustomersWithZeroBalance     int             `json:"customers_with_zero_balance"`
	TotalOutstandingReceivables  decimal.Decimal `json:"total_outstanding_receivables"`
	TotalOutstandingPayables     decimal.Decimal `json:"total_outstanding_payables"`
	NetPosition                  decimal.Decimal `json:"net_position"`
}

// AgingRowResponse is one customer's aging line. Buckets are flattened into
// top level keys (days_0_30, days_31_60, ..., days_over_N).
type AgingRowResponse struct {
	CustomerID     string
	CustomerName   string
	CurrentBalance decimal.Decimal
	Buckets        []domain.AgingBucket
}

// MarshalJSON flattens the bucket list.
func (r AgingRowResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Buckets)+3)
	out["customer_id"] = r.CustomerID
	out["customer_name"] = r.CustomerName
	out["current_balance"] = r.CurrentBalance
	for _, b := range r.Buckets {
		out[b.Label] = b.Amount
	}
	return json.Marshal(out)
}

// ToLedgerSummaryResponse converts the domain summary.
func ToLedgerSummaryResponse(s *domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		TotalCustomers:               s.TotalCustomers,
		CustomersWithPositiveBalance: s.CustomersWithPositiveBalance,
		CustomersWithNegativeBalance: s.CustomersWithNegativeBalance,
		CustomersWithZeroBalance:     s.CustomersWithZeroBalance,
		TotalOutstandingReceivables:  s.TotalOutstandingReceivables,
		TotalOutstandingPayables:     s.TotalOutstandingPayables,
		NetPosition:                  s.NetPosition,
	}
}

// ToAgingResponse converts aging rows, preserving order.
func ToAgingResponse(rows []domain.AgingRow) []AgingRowResponse {
	res := make([]AgingRowResponse, len(rows))
	for i, r := range rows {
		res[i] = AgingRowResponse{
			CustomerID:     r.CustomerID,
			CustomerName:   r.CustomerName,
			CurrentBalance: r.CurrentBalance,
			Buckets:        r.Buckets,
		}
	}
	return res
}
