package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObservePosting("invoice", "debit")
	m.ObservePosting("", "credit")
	m.PaymentRecorded()
	m.RefundRecorded()
	m.AllocationRejected("invoice_not_found")
	m.Track("record_payment")()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JournalPostings.WithLabelValues("invoice", "debit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JournalPostings.WithLabelValues("manual", "credit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payments))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refunds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AllocationRejections.WithLabelValues("invoice_not_found")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePosting("payment", "credit")
		m.PaymentRecorded()
		m.RefundRecorded()
		m.AllocationRejected("x")
		m.Track("op")()
	})
}
