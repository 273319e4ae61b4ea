package services

// ServiceContainer holds instances of all the application services.
// Handlers and the CLI reach the ledger core only through it.
type ServiceContainer struct {
	Customer  CustomerSvcFacade
	Invoice   InvoiceSvcFacade
	Order     OrderSvcFacade
	Payment   PaymentSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingService
}
