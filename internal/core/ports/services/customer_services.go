package services

import (
	"context"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)

	// GetCustomerLedger returns the customer's ledger account.
	GetCustomerLedger(ctx context.Context, customerID string) (*domain.LedgerAccount, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	// CreateCustomer creates the customer together with its ledger account.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
