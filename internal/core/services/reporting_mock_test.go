package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportingReader struct {
	mock.Mock
}

var _ portsrepo.ReportingReader = (*MockReportingReader)(nil)

func (m *MockReportingReader) ListCustomerBalances(ctx context.Context) ([]domain.CustomerBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerBalance), args.Error(1)
}

func (m *MockReportingReader) ListDebitEntries(ctx context.Context, ledgerIDs []string) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, ledgerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

func fixedClock() services.ServiceOption {
	return services.WithClock(func() time.Time { return time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) })
}

func TestGetCustomerAging_NoDebtorsSkipsJournal(t *testing.T) {
	reader := new(MockReportingReader)
	reader.On("ListCustomerBalances", mock.Anything).Return([]domain.CustomerBalance{
		{CustomerID: "c-1", LedgerID: "l-1", CurrentBalance: decimal.RequireFromString("-10")},
		{CustomerID: "c-2", LedgerID: "l-2", CurrentBalance: decimal.Zero},
	}, nil)

	svc := services.NewReportingService(reader, fixedClock())
	rows, err := svc.GetCustomerAging(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, rows)
	reader.AssertNotCalled(t, "ListDebitEntries", mock.Anything, mock.Anything)
}

func TestGetCustomerAging_OnlyPositiveLedgersQueried(t *testing.T) {
	reader := new(MockReportingReader)
	reader.On("ListCustomerBalances", mock.Anything).Return([]domain.CustomerBalance{
		{CustomerID: "c-1", CustomerName: "Owes", LedgerID: "l-1", CurrentBalance: decimal.RequireFromString("80")},
		{CustomerID: "c-2", CustomerName: "Owed", LedgerID: "l-2", CurrentBalance: decimal.RequireFromString("-5")},
	}, nil)
	reader.On("ListDebitEntries", mock.Anything, []string{"l-1"}).Return([]domain.LedgerTransaction{
		{LedgerID: "l-1", Amount: decimal.RequireFromString("80"), TransactionType: domain.Debit,
			TransactionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	svc := services.NewReportingService(reader, fixedClock(), services.WithAgingBoundaries([]int{30, 60, 90}))
	rows, err := svc.GetCustomerAging(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c-1", rows[0].CustomerID)
	assert.Equal(t, "80", rows[0].Buckets[3].Amount.String())
	reader.AssertExpectations(t)
}

func TestGetLedgerSummary_StoreError(t *testing.T) {
	reader := new(MockReportingReader)
	storeErr := errors.New("connection reset")
	reader.On("ListCustomerBalances", mock.Anything).Return(nil, storeErr)

	svc := services.NewReportingService(reader)
	_, err := svc.GetLedgerSummary(context.Background())

	assert.ErrorIs(t, err, storeErr)
}
