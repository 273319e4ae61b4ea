package services_test

import (
	"time"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/dto"
)

func (s *ServiceTestSuite) manual(ledgerID, typ, amount string, date time.Time) *domain.LedgerTransaction {
	entry, err := s.svc.Ledger.PostLedgerTransaction(s.ctx, ledgerID, dto.LedgerTransactionRequest{
		Amount:          dec(amount),
		Type:            typ,
		Description:     "manual " + typ,
		TransactionDate: &date,
	})
	s.Require().NoError(err)
	return entry
}

func (s *ServiceTestSuite) TestManualEntry_PostCorrectVoid() {
	_, ledger := s.createCustomer("Manual")

	entry := s.manual(ledger.LedgerID, "debit", "50", s.now)
	s.Equal(domain.RefNone, entry.ReferenceType)
	s.Equal("50", s.balance(ledger.LedgerID).String())

	corrected, err := s.svc.Ledger.CorrectLedgerTransaction(s.ctx, entry.TransactionID, dto.LedgerTransactionRequest{
		Amount: dec("20"),
		Type:   "credit",
	})
	s.Require().NoError(err)
	s.Equal(entry.TransactionID, corrected.TransactionID)
	s.Equal(domain.Credit, corrected.TransactionType)
	s.Equal("-20", s.balance(ledger.LedgerID).String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)

	s.Require().NoError(s.svc.Ledger.VoidLedgerTransaction(s.ctx, entry.TransactionID))
	s.True(s.balance(ledger.LedgerID).IsZero())
	s.Empty(s.journal(ledger.LedgerID))

	err = s.svc.Ledger.VoidLedgerTransaction(s.ctx, entry.TransactionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServiceTestSuite) TestManualEntry_OpeningBalanceCountsInReplay() {
	customer, err := s.svc.Customer.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Name: "Carried over", OpeningBalance: decPtr("125.40")})
	s.Require().NoError(err)
	ledger, err := s.svc.Customer.GetCustomerLedger(s.ctx, customer.CustomerID)
	s.Require().NoError(err)
	s.Equal("125.4", ledger.CurrentBalance.String())
	s.Equal("125.4", ledger.OpeningBalance.String())

	s.manual(ledger.LedgerID, "credit", "25.40", s.now)
	s.Equal("100", s.balance(ledger.LedgerID).String())
	s.assertBalanceMatchesJournal(ledger.LedgerID)
}

func (s *ServiceTestSuite) TestManualEntry_SourceEntriesAreImmutable() {
	customer, ledger := s.createCustomer("Immutable")
	s.issueInvoice(customer.CustomerID, "300", "")
	entries := s.journal(ledger.LedgerID)
	s.Require().Len(entries, 1)
	invoiceEntry := entries[0]

	_, err := s.svc.Ledger.CorrectLedgerTransaction(s.ctx, invoiceEntry.TransactionID, dto.LedgerTransactionRequest{
		Amount: dec("1"),
		Type:   "debit",
	})
	s.ErrorIs(err, domain.ErrSourceEntryImmutable)

	err = s.svc.Ledger.VoidLedgerTransaction(s.ctx, invoiceEntry.TransactionID)
	s.ErrorIs(err, domain.ErrSourceEntryImmutable)
	s.Equal("300", s.balance(ledger.LedgerID).String())
}

func (s *ServiceTestSuite) TestManualEntry_Validation() {
	_, ledger := s.createCustomer("Invalid")

	_, err := s.svc.Ledger.PostLedgerTransaction(s.ctx, ledger.LedgerID, dto.LedgerTransactionRequest{Amount: dec("10"), Type: "sideways"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.PostLedgerTransaction(s.ctx, ledger.LedgerID, dto.LedgerTransactionRequest{Amount: dec("0"), Type: "debit"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.PostLedgerTransaction(s.ctx, "no-ledger", dto.LedgerTransactionRequest{Amount: dec("10"), Type: "debit"})
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.True(s.balance(ledger.LedgerID).IsZero())
}

func (s *ServiceTestSuite) TestListLedgerTransactions_Pages() {
	_, ledger := s.createCustomer("Pages")
	for day := 1; day <= 5; day++ {
		s.manual(ledger.LedgerID, "debit", "10", time.Date(2026, 4, day, 8, 0, 0, 0, time.UTC))
	}

	var seen []string
	params := dto.ListLedgerTransactionsParams{Limit: 2}
	pages := 0
	for {
		resp, err := s.svc.Ledger.ListLedgerTransactions(s.ctx, ledger.LedgerID, params)
		s.Require().NoError(err)
		pages++
		for _, t := range resp.Transactions {
			seen = append(seen, t.TransactionDate.Format("2006-01-02"))
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}
	s.Equal(3, pages)
	s.Equal([]string{"2026-04-01", "2026-04-02", "2026-04-03", "2026-04-04", "2026-04-05"}, seen)
}

func (s *ServiceTestSuite) TestListLedgerTransactions_DateRange() {
	_, ledger := s.createCustomer("Range")
	for day := 1; day <= 5; day++ {
		s.manual(ledger.LedgerID, "credit", "1", time.Date(2026, 4, day, 23, 30, 0, 0, time.UTC))
	}

	from := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
	resp, err := s.svc.Ledger.ListLedgerTransactions(s.ctx, ledger.LedgerID, dto.ListLedgerTransactionsParams{From: &from, To: &to})
	s.Require().NoError(err)
	s.Len(resp.Transactions, 3)
	s.Nil(resp.NextToken)

	_, err = s.svc.Ledger.ListLedgerTransactions(s.ctx, ledger.LedgerID, dto.ListLedgerTransactionsParams{From: &to, To: &from})
	s.ErrorIs(err, apperrors.ErrValidation)

	bad := "not-a-token"
	_, err = s.svc.Ledger.ListLedgerTransactions(s.ctx, ledger.LedgerID, dto.ListLedgerTransactionsParams{Limit: 1, NextToken: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Ledger.ListLedgerTransactions(s.ctx, "missing", dto.ListLedgerTransactionsParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)
}
