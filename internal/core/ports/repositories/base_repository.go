package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one store transaction.
// fn's error (or a failed commit) rolls everything back; nothing fn wrote is
// visible to other callers until WithinTx returns nil.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of operations available inside a transaction. The ...ForUpdate
// finders take an exclusive row lock held until the transaction ends.
type Tx interface {
	CustomerReader
	CustomerWriter
	LedgerTxSupport
	JournalTxSupport
	InvoiceTxSupport
	PaymentTxSupport
	OrderTxSupport
}

// Reader is the read side used outside of transactions.
type Reader interface {
	CustomerReader
	LedgerReader
	JournalReader
	InvoiceReader
	PaymentReader
	OrderReader
	ReportingReader
}

// Store is implemented by every storage backend.
type Store interface {
	TransactionManager
	Reader
	Close()
}
