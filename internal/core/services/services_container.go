package services

import (
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopledger/internal/core/ports/services"
)

// NewServiceContainer wires every service against one store. The options apply to all of them.
func NewServiceContainer(store portsrepo.Store, opts ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Customer:  NewCustomerService(store, opts...),
		Invoice:   NewInvoiceService(store, opts...),
		Order:     NewOrderService(store, opts...),
		Payment:   NewPaymentService(store, opts...),
		Ledger:    NewLedgerService(store, opts...),
		Reporting: NewReportingService(store, opts...),
	}
}
