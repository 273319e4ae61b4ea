package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
	"github.com/SscSPs/shopledger/internal/utils/accounting"
)

type reportingService struct {
	BaseService
	store portsrepo.ReportingReader
}

// NewReportingService creates the summary and aging service.
func NewReportingService(store portsrepo.ReportingReader, opts ...ServiceOption) portssvc.ReportingService {
	return &reportingService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	defer s.metrics.Track("ledger_summary")()

	balances, err := s.store.ListCustomerBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load balances for summary")
		return nil, err
	}
	summary := accounting.SummarizeBalances(balances)
	s.LogDebug(ctx, "Ledger summary computed", slog.Int("customers", summary.TotalCustomers))
	return &summary, nil
}

func (s *reportingService) GetCustomerAging(ctx context.Context, boundaries []int) ([]domain.AgingRow, error) {
	defer s.metrics.Track("customer_aging")()

	if boundaries == nil {
		boundaries = s.agingBoundaries
	}
	if err := accounting.ValidateBoundaries(boundaries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	balances, err := s.store.ListCustomerBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load balances for aging")
		return nil, err
	}
	var debits []domain.LedgerTransaction
	if ids := accounting.PositiveLedgerIDs(balances); len(ids) > 0 {
		debits, err = s.store.ListDebitEntries(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load debit entries for aging")
			return nil, err
		}
	}
	return accounting.BuildAgingReport(balances, debits, boundaries, s.now()), nil
}
