package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shopledger/internal/core/ports/repositories"
	"github.com/SscSPs/shopledger/internal/core/services"
	"github.com/SscSPs/shopledger/internal/dto"
	"github.com/SscSPs/shopledger/internal/platform/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func (s *ServiceTestSuite) TestPaymentLifecycle() {
	customer, ledger := s.createCustomer("Asha Traders")
	invoice := s.issueInvoice(customer.CustomerID, "1000", "180")
	s.Equal("1180", s.balance(ledger.LedgerID).String())

	first, err := s.pay(customer.CustomerID, "700", alloc(invoice.InvoiceID, "700"))
	s.Require().NoError(err)
	got := s.invoice(invoice.InvoiceID)
	s.Equal("700", got.AmountPaid.String())
	s.Equal(domain.InvoicePartiallyPaid, got.Status)
	s.Equal("480", s.balance(ledger.LedgerID).String())

	second, err := s.pay(customer.CustomerID, "480", alloc(invoice.InvoiceID, "480"))
	s.Require().NoError(err)
	got = s.invoice(invoice.InvoiceID)
	s.Equal("1180", got.AmountPaid.String())
	s.Equal(domain.InvoicePaid, got.Status)
	s.True(s.balance(ledger.LedgerID).IsZero())

	refund, err := s.svc.Payment.RefundPayment(s.ctx, second.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("300"), Reason: "returned goods"})
	s.Require().NoError(err)
	s.Equal("300", refund.Amount.String())

	got = s.invoice(invoice.InvoiceID)
	s.Equal("880", got.AmountPaid.String())
	s.Equal(domain.InvoicePartiallyPaid, got.Status)
	s.Equal("300", s.balance(ledger.LedgerID).String())

	details, err := s.svc.Payment.GetPayment(s.ctx, second.PaymentID)
	s.Require().NoError(err)
	s.Require().Len(details.Allocations, 1)
	s.Equal("180", details.Allocations[0].Amount.String())
	s.Require().Len(details.Refunds, 1)
	s.Equal("300", details.RefundedAmount().String())

	// The first payment is untouched by the refund of the second.
	details, err = s.svc.Payment.GetPayment(s.ctx, first.PaymentID)
	s.Require().NoError(err)
	s.Require().Len(details.Allocations, 1)
	s.Equal("700", details.Allocations[0].Amount.String())

	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 4)
	last := entries[3]
	s.Equal(domain.Debit, last.TransactionType)
	s.Equal(domain.RefPaymentRefund, last.ReferenceType)
	s.Equal(refund.RefundID, last.ReferenceID)
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestRecordPayment_WithoutAllocations() {
	customer, ledger := s.createCustomer("Walk-in")

	payment, err := s.pay(customer.CustomerID, "250.50")
	s.Require().NoError(err)
	s.Equal("-250.5", s.balance(ledger.LedgerID).String())

	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 1)
	s.Equal(domain.Credit, entries[0].TransactionType)
	s.Equal(domain.RefPayment, entries[0].ReferenceType)
	s.Equal(payment.PaymentID, entries[0].ReferenceID)
	s.Equal("Payment received via cash", entries[0].Description)
}

func (s *ServiceTestSuite) TestRecordPayment_ClampsAmountPaidToTotal() {
	customer, ledger := s.createCustomer("Overpayer")
	invoice := s.issueInvoice(customer.CustomerID, "100", "")

	_, err := s.pay(customer.CustomerID, "150", alloc(invoice.InvoiceID, "150"))
	s.Require().NoError(err)

	got := s.invoice(invoice.InvoiceID)
	s.Equal("100", got.AmountPaid.String())
	s.Equal(domain.InvoicePaid, got.Status)
	s.Equal("-50", s.balance(ledger.LedgerID).String())
}

func (s *ServiceTestSuite) TestRecordPayment_InvalidAllocationRollsBackBatch() {
	customer, ledger := s.createCustomer("Batch")
	invoice := s.issueInvoice(customer.CustomerID, "400", "")

	_, err := s.pay(customer.CustomerID, "300",
		alloc(invoice.InvoiceID, "100"),
		alloc("no-such-invoice", "50"))
	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrInvalidAllocation)
	s.ErrorIs(err, apperrors.ErrValidation)

	got := s.invoice(invoice.InvoiceID)
	s.True(got.AmountPaid.IsZero())
	s.Equal(domain.InvoiceSent, got.Status)
	s.Equal("400", s.balance(ledger.LedgerID).String())
	s.Len(s.journal(ledger.LedgerID), 1)
}

func (s *ServiceTestSuite) TestRecordPayment_RejectsForeignInvoice() {
	owner, _ := s.createCustomer("Owner")
	other, otherLedger := s.createCustomer("Other")
	invoice := s.issueInvoice(owner.CustomerID, "90", "")

	_, err := s.pay(other.CustomerID, "90", alloc(invoice.InvoiceID, "90"))
	s.ErrorIs(err, domain.ErrInvalidAllocation)
	s.True(s.balance(otherLedger.LedgerID).IsZero())
	s.True(s.invoice(invoice.InvoiceID).AmountPaid.IsZero())
}

func (s *ServiceTestSuite) TestRecordPayment_MalformedAllocations() {
	customer, _ := s.createCustomer("Malformed")
	invoice := s.issueInvoice(customer.CustomerID, "90", "")

	tests := []struct {
		name  string
		alloc dto.AllocationRequest
	}{
		{"missing invoice", dto.AllocationRequest{Amount: decPtr("10")}},
		{"missing amount", dto.AllocationRequest{InvoiceID: invoice.InvoiceID}},
		{"zero amount", alloc(invoice.InvoiceID, "0")},
		{"negative amount", alloc(invoice.InvoiceID, "-5")},
		{"three decimals", alloc(invoice.InvoiceID, "1.005")},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.pay(customer.CustomerID, "50", tt.alloc)
			s.ErrorIs(err, domain.ErrInvalidAllocation)
		})
	}
}

func (s *ServiceTestSuite) TestRecordPayment_AllocationsExceedingPayment() {
	customer, ledger := s.createCustomer("Greedy")
	invoice := s.issueInvoice(customer.CustomerID, "500", "")

	_, err := s.pay(customer.CustomerID, "100", alloc(invoice.InvoiceID, "150"))
	s.ErrorIs(err, domain.ErrAllocationExceedsPayment)
	s.Equal("500", s.balance(ledger.LedgerID).String())

	relaxed := services.NewPaymentService(s.store, s.options(
		services.WithLedgerPolicy(services.LedgerPolicy{StrictAllocation: false, StrictRefund: true}))...)
	_, err = relaxed.RecordPayment(s.ctx, dto.RecordPaymentRequest{
		CustomerID:    customer.CustomerID,
		Amount:        dec("100"),
		PaymentMethod: "upi",
		Allocations:   []dto.AllocationRequest{alloc(invoice.InvoiceID, "150")},
	})
	s.Require().NoError(err)
	s.Equal("150", s.invoice(invoice.InvoiceID).AmountPaid.String())
	s.Equal("400", s.balance(ledger.LedgerID).String())
}

func (s *ServiceTestSuite) TestRecordPayment_InvalidAmount() {
	customer, _ := s.createCustomer("Zero")
	for _, amount := range []string{"0", "-1", "10.001"} {
		_, err := s.pay(customer.CustomerID, amount)
		s.ErrorIs(err, apperrors.ErrValidation, amount)
	}
}

func (s *ServiceTestSuite) TestRecordPayment_UnknownCustomer() {
	_, err := s.pay("ghost", "10")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServiceTestSuite) TestRecordPayment_MissingLedger() {
	err := s.store.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		return tx.SaveCustomer(ctx, domain.Customer{CustomerID: "orphan", Name: "No ledger", CreatedAt: s.now, UpdatedAt: s.now})
	})
	s.Require().NoError(err)

	_, err = s.pay("orphan", "10")
	s.ErrorIs(err, domain.ErrLedgerMissing)
	s.ErrorIs(err, apperrors.ErrIntegrity)
}

func (s *ServiceTestSuite) TestRecordPayment_WriteFailureLeavesNothingBehind() {
	customer, ledger := s.createCustomer("Atomic")
	invoice := s.issueInvoice(customer.CustomerID, "200", "")

	broken := services.NewPaymentService(failingStore{Store: s.store}, s.options()...)
	_, err := broken.RecordPayment(s.ctx, dto.RecordPaymentRequest{
		CustomerID:    customer.CustomerID,
		Amount:        dec("200"),
		PaymentMethod: "card",
		Allocations:   []dto.AllocationRequest{alloc(invoice.InvoiceID, "200")},
	})
	s.ErrorIs(err, errDiskFull)

	s.Equal("200", s.balance(ledger.LedgerID).String())
	s.Len(s.journal(ledger.LedgerID), 1)
	s.True(s.invoice(invoice.InvoiceID).AmountPaid.IsZero())
}

func (s *ServiceTestSuite) TestRefundPayment_UnwindsNewestAllocationFirst() {
	customer, ledger := s.createCustomer("Unwind")
	older := s.issueInvoice(customer.CustomerID, "100", "")
	newer := s.issueInvoice(customer.CustomerID, "200", "")

	payment, err := s.pay(customer.CustomerID, "300",
		alloc(older.InvoiceID, "100"),
		alloc(newer.InvoiceID, "200"))
	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, s.invoice(older.InvoiceID).Status)
	s.Equal(domain.InvoicePaid, s.invoice(newer.InvoiceID).Status)

	_, err = s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("250")})
	s.Require().NoError(err)

	gotNewer := s.invoice(newer.InvoiceID)
	s.True(gotNewer.AmountPaid.IsZero())
	s.Equal(domain.InvoiceSent, gotNewer.Status)
	gotOlder := s.invoice(older.InvoiceID)
	s.Equal("50", gotOlder.AmountPaid.String())
	s.Equal(domain.InvoicePartiallyPaid, gotOlder.Status)

	details, err := s.svc.Payment.GetPayment(s.ctx, payment.PaymentID)
	s.Require().NoError(err)
	s.Require().Len(details.Allocations, 1)
	s.Equal(older.InvoiceID, details.Allocations[0].InvoiceID)
	s.Equal("50", details.Allocations[0].Amount.String())

	s.Equal("250", s.balance(ledger.LedgerID).String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestRefundPayment_DefaultsToFullAmount() {
	customer, ledger := s.createCustomer("Full refund")
	invoice := s.issueInvoice(customer.CustomerID, "75", "")
	payment, err := s.pay(customer.CustomerID, "75", alloc(invoice.InvoiceID, "75"))
	s.Require().NoError(err)

	refund, err := s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{})
	s.Require().NoError(err)
	s.Equal("75", refund.Amount.String())
	s.Equal(domain.InvoiceSent, s.invoice(invoice.InvoiceID).Status)
	s.Equal("75", s.balance(ledger.LedgerID).String())

	details, err := s.svc.Payment.GetPayment(s.ctx, payment.PaymentID)
	s.Require().NoError(err)
	s.Empty(details.Allocations)
}

func (s *ServiceTestSuite) TestRefundPayment_RejectsAmountAbovePayment() {
	customer, ledger := s.createCustomer("Too much")
	payment, err := s.pay(customer.CustomerID, "100")
	s.Require().NoError(err)

	_, err = s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("100.01")})
	s.ErrorIs(err, domain.ErrInvalidRefundAmount)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Equal("-100", s.balance(ledger.LedgerID).String())
	s.Len(s.journal(ledger.LedgerID), 1)
}

func (s *ServiceTestSuite) TestRefundPayment_CumulativeBound() {
	customer, ledger := s.createCustomer("Repeat refunds")
	payment, err := s.pay(customer.CustomerID, "500")
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		_, err = s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("200")})
		s.Require().NoError(err)
	}
	_, err = s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("200")})
	s.ErrorIs(err, domain.ErrInvalidRefundAmount)
	s.Equal("-100", s.balance(ledger.LedgerID).String())

	// Without the cumulative bound each refund is only checked against the payment amount.
	relaxed := services.NewPaymentService(s.store, s.options(
		services.WithLedgerPolicy(services.LedgerPolicy{StrictAllocation: true, StrictRefund: false}))...)
	_, err = relaxed.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("200")})
	s.Require().NoError(err)
	s.Equal("100", s.balance(ledger.LedgerID).String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestRefundPayment_NonPositiveAmount() {
	customer, _ := s.createCustomer("Nothing back")
	payment, err := s.pay(customer.CustomerID, "10")
	s.Require().NoError(err)

	for _, amount := range []string{"0", "-3"} {
		_, err = s.svc.Payment.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{Amount: decPtr(amount)})
		s.ErrorIs(err, domain.ErrInvalidRefundAmount, amount)
	}
}

func (s *ServiceTestSuite) TestRefundPayment_UnknownPayment() {
	_, err := s.svc.Payment.RefundPayment(s.ctx, "missing", dto.RefundPaymentRequest{})
	s.ErrorIs(err, domain.ErrPaymentNotFound)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServiceTestSuite) TestRefundPayment_WriteFailureRollsBack() {
	customer, ledger := s.createCustomer("Broken refund")
	invoice := s.issueInvoice(customer.CustomerID, "60", "")
	payment, err := s.pay(customer.CustomerID, "60", alloc(invoice.InvoiceID, "60"))
	s.Require().NoError(err)

	broken := services.NewPaymentService(failingStore{Store: s.store}, s.options()...)
	_, err = broken.RefundPayment(s.ctx, payment.PaymentID, dto.RefundPaymentRequest{})
	s.ErrorIs(err, errDiskFull)

	s.True(s.balance(ledger.LedgerID).IsZero())
	s.Len(s.journal(ledger.LedgerID), 2)
	s.Equal(domain.InvoicePaid, s.invoice(invoice.InvoiceID).Status)
}

func (s *ServiceTestSuite) TestGetPayment_NotFound() {
	_, err := s.svc.Payment.GetPayment(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrPaymentNotFound)
}

func (s *ServiceTestSuite) TestBalanceStaysExactOverManyPayments() {
	customer, ledger := s.createCustomer("Pennies")
	for i := 0; i < 25; i++ {
		_, err := s.pay(customer.CustomerID, "0.10")
		s.Require().NoError(err)
	}
	s.True(s.balance(ledger.LedgerID).Equal(decimal.RequireFromString("-2.5")))
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestRefundThenReallocateRestoresInvoice() {
	customer, ledger := s.createCustomer("Round trip")
	invoice := s.issueInvoice(customer.CustomerID, "1000", "180")
	_, err := s.pay(customer.CustomerID, "700", alloc(invoice.InvoiceID, "700"))
	s.Require().NoError(err)
	second, err := s.pay(customer.CustomerID, "480", alloc(invoice.InvoiceID, "480"))
	s.Require().NoError(err)

	before := s.invoice(invoice.InvoiceID)
	s.Equal("1180", before.AmountPaid.String())
	s.Equal(domain.InvoicePaid, before.Status)

	_, err = s.svc.Payment.RefundPayment(s.ctx, second.PaymentID, dto.RefundPaymentRequest{Amount: decPtr("300")})
	s.Require().NoError(err)
	s.Equal(domain.InvoicePartiallyPaid, s.invoice(invoice.InvoiceID).Status)

	_, err = s.pay(customer.CustomerID, "300", alloc(invoice.InvoiceID, "300"))
	s.Require().NoError(err)

	after := s.invoice(invoice.InvoiceID)
	s.True(after.AmountPaid.Equal(before.AmountPaid), "amount_paid %s, want %s", after.AmountPaid, before.AmountPaid)
	s.Equal(before.Status, after.Status)
	s.True(s.balance(ledger.LedgerID).IsZero())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestRecordPayment_ConcurrentAllocationsToOneInvoice() {
	customer, ledger := s.createCustomer("Busy counter")
	invoice := s.issueInvoice(customer.CustomerID, "1000", "")

	// Default UUIDv7 ids: the suite's sequential generator is not safe across goroutines.
	svc := services.NewPaymentService(s.store)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPayment(s.ctx, dto.RecordPaymentRequest{
				CustomerID:    customer.CustomerID,
				Amount:        dec("50"),
				PaymentMethod: "cash",
				Allocations:   []dto.AllocationRequest{alloc(invoice.InvoiceID, "50")},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	got := s.invoice(invoice.InvoiceID)
	s.Equal("500", got.AmountPaid.String())
	s.Equal(domain.InvoicePartiallyPaid, got.Status)
	s.Equal("500", s.balance(ledger.LedgerID).String())
	s.Len(s.journal(ledger.LedgerID), workers+1)
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestJournalPostingsCountedOnlyAfterCommit() {
	customer, _ := s.createCustomer("Metered")
	invoice := s.issueInvoice(customer.CustomerID, "200", "")
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	credits := metrics.JournalPostings.WithLabelValues(string(domain.RefPayment), string(domain.Credit))
	req := dto.RecordPaymentRequest{
		CustomerID:    customer.CustomerID,
		Amount:        dec("200"),
		PaymentMethod: "card",
		Allocations:   []dto.AllocationRequest{alloc(invoice.InvoiceID, "200")},
	}

	// The credit is inserted before the allocation write fails and the batch rolls back.
	broken := services.NewPaymentService(failingStore{Store: s.store}, s.options(services.WithMetrics(metrics))...)
	_, err := broken.RecordPayment(s.ctx, req)
	s.ErrorIs(err, errDiskFull)
	s.Zero(testutil.ToFloat64(credits))
	s.Zero(testutil.ToFloat64(metrics.Payments))

	working := services.NewPaymentService(s.store, s.options(services.WithMetrics(metrics))...)
	_, err = working.RecordPayment(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(1.0, testutil.ToFloat64(credits))
	s.Equal(1.0, testutil.ToFloat64(metrics.Payments))
}
