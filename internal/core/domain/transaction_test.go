package domain_test

import (
	"testing"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.LedgerTransaction
		want string
	}{
		{
			name: "debit is positive",
			tx:   domain.LedgerTransaction{Amount: decimal.RequireFromString("1180"), TransactionType: domain.Debit},
			want: "1180",
		},
		{
			name: "credit is negative",
			tx:   domain.LedgerTransaction{Amount: decimal.RequireFromString("700"), TransactionType: domain.Credit},
			want: "-700",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(tt.tx.SignedAmount()))
		})
	}
}

func TestLedgerTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.LedgerTransaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid manual entry",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.RequireFromString("10.50"),
				TransactionType: domain.Debit,
			},
		},
		{
			name: "valid source entry",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.RequireFromString("10"),
				TransactionType: domain.Credit,
				ReferenceType:   domain.RefPayment,
				ReferenceID:     "pay_1",
			},
		},
		{
			name: "zero amount",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.Zero,
				TransactionType: domain.Debit,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "sub-cent amount",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.RequireFromString("1.005"),
				TransactionType: domain.Debit,
			},
			wantErr: true,
			errMsg:  "more than two decimal places",
		},
		{
			name: "unknown type",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.RequireFromString("1"),
				TransactionType: "transfer",
			},
			wantErr: true,
			errMsg:  "unknown transaction type",
		},
		{
			name: "reference without id",
			tx: domain.LedgerTransaction{
				LedgerID:        "ledger_1",
				Amount:          decimal.RequireFromString("1"),
				TransactionType: domain.Debit,
				ReferenceType:   domain.RefInvoice,
			},
			wantErr: true,
			errMsg:  "reference ID is required",
		},
		{
			name: "missing ledger",
			tx: domain.LedgerTransaction{
				Amount:          decimal.RequireFromString("1"),
				TransactionType: domain.Debit,
			},
			wantErr: true,
			errMsg:  "ledger ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}
