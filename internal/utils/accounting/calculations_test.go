package accounting_test

import (
	"testing"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReplayBalance(t *testing.T) {
	entries := []domain.LedgerTransaction{
		{Amount: dec("1180"), TransactionType: domain.Debit},
		{Amount: dec("700"), TransactionType: domain.Credit},
		{Amount: dec("300"), TransactionType: domain.Debit},
	}
	assert.True(t, dec("790").Equal(accounting.ReplayBalance(dec("10"), entries)))
	assert.True(t, dec("10").Equal(accounting.ReplayBalance(dec("10"), nil)))
}

func TestSummarizeBalances(t *testing.T) {
	balances := []domain.CustomerBalance{
		{CustomerID: "a", CurrentBalance: dec("480")},
		{CustomerID: "b", CurrentBalance: dec("-120.50")},
		{CustomerID: "c", CurrentBalance: dec("0")},
		{CustomerID: "d", CurrentBalance: dec("20")},
	}

	s := accounting.SummarizeBalances(balances)

	assert.Equal(t, 4, s.TotalCustomers)
	assert.Equal(t, 2, s.CustomersWithPositiveBalance)
	assert.Equal(t, 1, s.CustomersWithNegativeBalance)
	assert.Equal(t, 1, s.CustomersWithZeroBalance)
	assert.True(t, dec("500").Equal(s.TotalOutstandingReceivables))
	assert.True(t, dec("120.50").Equal(s.TotalOutstandingPayables))
	assert.True(t, dec("379.50").Equal(s.NetPosition))
}

func TestSummarizeBalances_Empty(t *testing.T) {
	s := accounting.SummarizeBalances(nil)
	assert.Equal(t, 0, s.TotalCustomers)
	assert.True(t, s.NetPosition.IsZero())
}
