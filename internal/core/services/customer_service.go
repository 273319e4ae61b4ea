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
	"github.com/shopspring/decimal"
)

type customerService struct {
	BaseService
	store portsrepo.Store
}

// NewCustomerService creates the customer service.
func NewCustomerService(store portsrepo.Store, opts ...ServiceOption) portssvc.CustomerSvcFacade {
	return &customerService{BaseService: newBaseService(opts...), store: store}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	if err := validateRequest(req); err != nil {
		s.LogWarn(ctx, err, "Rejected customer")
		return nil, err
	}
	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
		if !opening.Equal(opening.Round(2)) {
			return nil, fmt.Errorf("%w: opening balance %s has more than two decimal places", apperrors.ErrValidation, opening.String())
		}
	}

	now := s.now()
	customer := domain.Customer{
		CustomerID: s.newID(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	ledger := domain.NewLedgerAccount(s.newID(), customer.CustomerID, opening, now)

	err := s.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if err := tx.SaveCustomer(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}
		if err := tx.SaveLedger(ctx, ledger); err != nil {
			return fmt.Errorf("failed to create ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("customer_id", customer.CustomerID))
		return nil, err
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("opening_balance", opening.String()))
	return &customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.store.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer " + customerID)
		}
		s.LogError(ctx, err, "Failed to get customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetCustomerLedger(ctx context.Context, customerID string) (*domain.LedgerAccount, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	ledger, err := s.store.FindLedgerByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("ledger of customer " + customerID)
		}
		s.LogError(ctx, err, "Failed to get ledger", slog.String("customer_id", customerID))
		return nil, err
	}
	return ledger, nil
}
