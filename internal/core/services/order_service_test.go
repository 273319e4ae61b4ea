package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/core/services"
	"github.com/SscSPs/shopledger/internal/dto"
)

func (s *ServiceTestSuite) createOrder(customerID, total string) *domain.Order {
	order, err := s.svc.Order.CreateOrder(s.ctx, dto.CreateOrderRequest{CustomerID: customerID, Total: dec(total)})
	s.Require().NoError(err)
	s.Equal(domain.OrderPending, order.Status)
	return order
}

func (s *ServiceTestSuite) TestMarkOrderDelivered_PostsReceivableOnce() {
	customer, ledger := s.createCustomer("Delivery")
	order := s.createOrder(customer.CustomerID, "250")
	s.Empty(s.journal(ledger.LedgerID))

	delivered, err := s.svc.Order.MarkOrderDelivered(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(domain.OrderDelivered, delivered.Status)
	s.Equal("250", s.balance(ledger.LedgerID).String())

	_, err = s.svc.Order.MarkOrderDelivered(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal("250", s.balance(ledger.LedgerID).String())

	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 1)
	s.Equal(domain.RefOrder, entries[0].ReferenceType)
	s.Equal(order.OrderID, entries[0].ReferenceID)
	s.Equal(domain.Debit, entries[0].TransactionType)
}

func (s *ServiceTestSuite) TestMarkOrderDelivered_SkipsInvoicedOrder() {
	customer, ledger := s.createCustomer("Invoiced first")
	order := s.createOrder(customer.CustomerID, "400")

	_, err := s.svc.Invoice.IssueInvoice(s.ctx, dto.IssueInvoiceRequest{
		CustomerID: customer.CustomerID,
		OrderID:    &order.OrderID,
		Amount:     dec("400"),
	})
	s.Require().NoError(err)

	delivered, err := s.svc.Order.MarkOrderDelivered(s.ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(domain.OrderDelivered, delivered.Status)

	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 1)
	s.Equal(domain.RefInvoice, entries[0].ReferenceType)
	s.Equal("400", s.balance(ledger.LedgerID).String())
}

func (s *ServiceTestSuite) TestMarkOrderDelivered_Errors() {
	_, err := s.svc.Order.MarkOrderDelivered(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Order.CreateOrder(s.ctx, dto.CreateOrderRequest{CustomerID: "ghost", Total: dec("10")})
	s.ErrorIs(err, apperrors.ErrNotFound)

	customer, _ := s.createCustomer("Bad order")
	_, err = s.svc.Order.CreateOrder(s.ctx, dto.CreateOrderRequest{CustomerID: customer.CustomerID, Total: dec("10"), Status: "delivered"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ServiceTestSuite) TestIssueInvoice_Validation() {
	customer, ledger := s.createCustomer("Invoices")
	other, _ := s.createCustomer("Someone else")
	foreignOrder := s.createOrder(other.CustomerID, "10")

	tests := []struct {
		name string
		req  dto.IssueInvoiceRequest
		want error
	}{
		{"unknown customer", dto.IssueInvoiceRequest{CustomerID: "ghost", Amount: dec("10")}, apperrors.ErrNotFound},
		{"zero amount", dto.IssueInvoiceRequest{CustomerID: customer.CustomerID, Amount: dec("0")}, apperrors.ErrValidation},
		{"negative tax", dto.IssueInvoiceRequest{CustomerID: customer.CustomerID, Amount: dec("10"), Tax: decPtr("-1")}, apperrors.ErrValidation},
		{"unknown order", dto.IssueInvoiceRequest{CustomerID: customer.CustomerID, Amount: dec("10"), OrderID: strPtr("nope")}, apperrors.ErrValidation},
		{"foreign order", dto.IssueInvoiceRequest{CustomerID: customer.CustomerID, Amount: dec("10"), OrderID: &foreignOrder.OrderID}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Invoice.IssueInvoice(s.ctx, tt.req)
			s.ErrorIs(err, tt.want)
		})
	}
	s.Empty(s.journal(ledger.LedgerID))
}

func (s *ServiceTestSuite) TestIssueInvoice_PostsTotalOnIssueDate() {
	customer, ledger := s.createCustomer("Dated")
	issued := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	due := issued.AddDate(0, 0, 30)

	invoice, err := s.svc.Invoice.IssueInvoice(s.ctx, dto.IssueInvoiceRequest{
		CustomerID: customer.CustomerID,
		Amount:     dec("99.99"),
		Tax:        decPtr("0.01"),
		IssueDate:  &issued,
		DueDate:    &due,
	})
	s.Require().NoError(err)
	s.Equal(domain.InvoiceSent, invoice.Status)

	got, err := s.svc.Invoice.GetInvoice(s.ctx, invoice.InvoiceID)
	s.Require().NoError(err)
	s.Require().NotNil(got.DueDate)
	s.True(got.DueDate.Equal(due))

	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 1)
	s.Equal("100", entries[0].Amount.String())
	s.True(entries[0].TransactionDate.Equal(issued))

	_, err = s.svc.Invoice.GetInvoice(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServiceTestSuite) TestIssueInvoice_CreatesMissingLedger() {
	err := s.store.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.SaveCustomer(ctx, domain.Customer{CustomerID: "walk-in", Name: "No ledger yet", CreatedAt: s.now, UpdatedAt: s.now})
	})
	s.Require().NoError(err)

	s.issueInvoice("walk-in", "45", "5")

	ledger, err := s.store.FindLedgerByCustomerID(s.ctx, "walk-in")
	s.Require().NoError(err)
	s.True(ledger.OpeningBalance.IsZero())
	s.Equal("50", ledger.CurrentBalance.String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestIssueInvoice_LedgerCreatedConcurrentlyIsReused() {
	customer, ledger := s.createCustomer("Raced")

	svc := services.NewInvoiceService(staleLedgerStore{Store: s.store}, s.options()...)
	_, err := svc.IssueInvoice(s.ctx, dto.IssueInvoiceRequest{CustomerID: customer.CustomerID, Amount: dec("120")})
	s.Require().NoError(err)

	got, err := s.store.FindLedgerByCustomerID(s.ctx, customer.CustomerID)
	s.Require().NoError(err)
	s.Equal(ledger.LedgerID, got.LedgerID)
	s.Equal("120", got.CurrentBalance.String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func strPtr(v string) *string { return &v }
