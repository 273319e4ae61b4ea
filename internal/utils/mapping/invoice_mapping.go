package mapping

import (
	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/SscSPs/shopledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:  d.InvoiceID,
		CustomerID: d.CustomerID,
		OrderID:    NullableString(d.OrderID),
		Amount:     d.Amount,
		Tax:        d.Tax,
		AmountPaid: d.AmountPaid,
		Status:     string(d.Status),
		IssueDate:  d.IssueDate,
		DueDate:    d.DueDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:  m.InvoiceID,
		CustomerID: m.CustomerID,
		OrderID:    StringValue(m.OrderID),
		Amount:     m.Amount,
		Tax:        m.Tax,
		AmountPaid: m.AmountPaid,
		Status:     domain.InvoiceStatus(m.Status),
		IssueDate:  m.IssueDate,
		DueDate:    m.DueDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:    d.OrderID,
		CustomerID: d.CustomerID,
		Total:      d.Total,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:    m.OrderID,
		CustomerID: m.CustomerID,
		Total:      m.Total,
		Status:     domain.OrderStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
