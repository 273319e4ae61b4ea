package domain_test

import (
	"testing"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSettle(t *testing.T) {
	total := d("1180")
	tests := []struct {
		name       string
		paid       decimal.Decimal
		delta      decimal.Decimal
		wantPaid   decimal.Decimal
		wantStatus domain.InvoiceStatus
	}{
		{"first partial payment", d("0"), d("700"), d("700"), domain.InvoicePartiallyPaid},
		{"exactly settles", d("700"), d("480"), d("1180"), domain.InvoicePaid},
		{"overpayment is clamped", d("700"), d("600"), d("1180"), domain.InvoicePaid},
		{"refund back to partial", d("1180"), d("-300"), d("880"), domain.InvoicePartiallyPaid},
		{"refund to zero", d("300"), d("-300"), d("0"), domain.InvoiceSent},
		{"refund floored at zero", d("100"), d("-300"), d("0"), domain.InvoiceSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid, status := domain.Settle(tt.paid, tt.delta, total)
			assert.True(t, tt.wantPaid.Equal(paid), "paid: want %s got %s", tt.wantPaid, paid)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestSettle_RefundThenReallocateRestoresState(t *testing.T) {
	total := d("1180")
	paid, status := domain.Settle(d("1180"), d("-300"), total)
	paid, status2 := domain.Settle(paid, d("300"), total)

	assert.Equal(t, domain.InvoicePartiallyPaid, status)
	assert.Equal(t, domain.InvoicePaid, status2)
	assert.True(t, total.Equal(paid))
}

func TestInvoice_Outstanding(t *testing.T) {
	inv := domain.Invoice{Amount: d("1000"), Tax: d("180"), AmountPaid: d("700")}
	assert.True(t, d("1180").Equal(inv.Total()))
	assert.True(t, d("480").Equal(inv.Outstanding()))
}
