package mapping

import (
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		CustomerID:      d.CustomerID,
		Amount:          d.Amount,
		PaymentMethod:   d.PaymentMethod,
		ReferenceNumber: NullableString(d.ReferenceNumber),
		Notes:           NullableString(d.Notes),
		PaymentDate:     d.PaymentDate,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		CustomerID:      m.CustomerID,
		Amount:          m.Amount,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: StringValue(m.ReferenceNumber),
		Notes:           StringValue(m.Notes),
		PaymentDate:     m.PaymentDate,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainAllocation converts a model PaymentAllocation
func ToDomainAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation(m)
}

// ToModelAllocation converts a domain PaymentAllocation
func ToModelAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation(d)
}

// ToDomainAllocationSlice converts a slice of model allocations
func ToDomainAllocationSlice(ms []models.PaymentAllocation) []domain.PaymentAllocation {
	ds := make([]domain.PaymentAllocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}

// ToModelRefund converts a domain PaymentRefund to a model PaymentRefund
func ToModelRefund(d domain.PaymentRefund) models.PaymentRefund {
	return models.PaymentRefund{
		RefundID:  d.RefundID,
		PaymentID: d.PaymentID,
		Amount:    d.Amount,
		Reason:    NullableString(d.Reason),
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainRefund converts a model PaymentRefund to a domain PaymentRefund
func ToDomainRefund(m models.PaymentRefund) domain.PaymentRefund {
	return domain.PaymentRefund{
		RefundID:  m.RefundID,
		PaymentID: m.PaymentID,
		Amount:    m.Amount,
		Reason:    StringValue(m.Reason),
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainRefundSlice converts a slice of model refunds
func ToDomainRefundSlice(ms []models.PaymentRefund) []domain.PaymentRefund {
	ds := make([]domain.PaymentRefund, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRefund(m)
	}
	return ds
}
