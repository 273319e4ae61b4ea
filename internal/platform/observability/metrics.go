package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the ledger collectors. A nil *Metrics is valid and records nothing,
// so services can be built without a registry in tests.
type Metrics struct {
	JournalPostings      *prometheus.CounterVec
	Payments             prometheus.Counter
	Refunds              prometheus.Counter
	AllocationRejections *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers the ledger collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JournalPostings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopledger",
			Name:      "journal_postings_total",
			Help:      "Journal entries posted, by reference type and entry type",
		}, []string{"reference_type", "type"}),
		Payments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "shopledger",
			Name:      "payments_total",
			Help:      "Payments recorded",
		}),
		Refunds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "shopledger",
			Name:      "refunds_total",
			Help:      "Payment refunds recorded",
		}),
		AllocationRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopledger",
			Name:      "allocation_rejections_total",
			Help:      "Payment batches rejected because of an allocation",
		}, []string{"reason"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopledger",
			Name:      "operation_duration_seconds",
			Help:      "Latency of ledger operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopledger",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shopledger",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObservePosting counts one journal posting.
func (m *Metrics) ObservePosting(referenceType, entryType string) {
	if m == nil {
		return
	}
	if referenceType == "" {
		referenceType = "manual"
	}
	m.JournalPostings.WithLabelValues(referenceType, entryType).Inc()
}

// PaymentRecorded counts one committed payment.
func (m *Metrics) PaymentRecorded() {
	if m == nil {
		return
	}
	m.Payments.Inc()
}

// RefundRecorded counts one committed refund.
func (m *Metrics) RefundRecorded() {
	if m == nil {
		return
	}
	m.Refunds.Inc()
}

// AllocationRejected counts a payment batch aborted by one of its allocations.
func (m *Metrics) AllocationRejected(reason string) {
	if m == nil {
		return
	}
	m.AllocationRejections.WithLabelValues(reason).Inc()
}

// Track starts a latency measurement; call the returned func when the operation ends.
func (m *Metrics) Track(operation string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
