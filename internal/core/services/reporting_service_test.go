package services_test

import (
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/dto"
)

func (s *ServiceTestSuite) invoiceOn(customerID, amount string, issued time.Time) {
	_, err := s.svc.Invoice.IssueInvoice(s.ctx, dto.IssueInvoiceRequest{
		CustomerID: customerID,
		Amount:     dec(amount),
		IssueDate:  &issued,
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestGetCustomerAging_BucketsAreExclusive() {
	debtor, _ := s.createCustomer("Debtor")
	s.invoiceOn(debtor.CustomerID, "100", s.now.AddDate(0, 0, -9))
	s.invoiceOn(debtor.CustomerID, "50", s.now.AddDate(0, 0, -30))
	s.invoiceOn(debtor.CustomerID, "70", s.now.AddDate(0, 0, -31))
	s.invoiceOn(debtor.CustomerID, "30", s.now.AddDate(0, 0, -129))

	creditor, _ := s.createCustomer("Creditor")
	_, err := s.pay(creditor.CustomerID, "40")
	s.Require().NoError(err)

	s.createCustomer("Settled")

	rows, err := s.svc.Reporting.GetCustomerAging(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	row := rows[0]
	s.Equal(debtor.CustomerID, row.CustomerID)
	s.Equal("250", row.CurrentBalance.String())
	s.Require().Len(row.Buckets, 4)

	var amounts []string
	for _, b := range row.Buckets {
		amounts = append(amounts, b.Amount.String())
	}
	s.Equal([]string{"150", "70", "0", "30"}, amounts)

	rows, err = s.svc.Reporting.GetCustomerAging(s.ctx, []int{7, 60})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	amounts = amounts[:0]
	for _, b := range rows[0].Buckets {
		amounts = append(amounts, b.Amount.String())
	}
	s.Equal([]string{"0", "220", "30"}, amounts)

	_, err = s.svc.Reporting.GetCustomerAging(s.ctx, []int{60, 30})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ServiceTestSuite) TestGetLedgerSummary() {
	summary, err := s.svc.Reporting.GetLedgerSummary(s.ctx)
	s.Require().NoError(err)
	s.Zero(summary.TotalCustomers)
	s.True(summary.NetPosition.IsZero())

	debtor, _ := s.createCustomer("Debtor")
	s.issueInvoice(debtor.CustomerID, "300", "")
	creditor, _ := s.createCustomer("Creditor")
	_, err = s.pay(creditor.CustomerID, "120.50")
	s.Require().NoError(err)
	s.createCustomer("Settled")

	summary, err = s.svc.Reporting.GetLedgerSummary(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, summary.TotalCustomers)
	s.Equal(1, summary.CustomersWithPositiveBalance)
	s.Equal(1, summary.CustomersWithNegativeBalance)
	s.Equal(1, summary.CustomersWithZeroBalance)
	s.Equal("300", summary.TotalOutstandingReceivables.String())
	s.Equal("120.5", summary.TotalOutstandingPayables.String())
	s.Equal("179.5", summary.NetPosition.String())
}
