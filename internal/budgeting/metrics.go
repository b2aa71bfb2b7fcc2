package budgeting

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	metricOperation         = "budgeting.operation"
	metricTransactionPosted = "transaction.posted"
	metricFundsTransferred  = "funds.transferred"
	metricOperationDuration = "budgeting.operation.duration"
	metricTransferAmount    = "transfer_amount"
	metricTransactionAmount = "transaction_amount"
	metricCategoryBalance   = "category_balance"
)

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type PrometheusMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration prometheus.Histogram
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec
	transfersTotal    *prometheus.CounterVec
	transferAmount    prometheus.Histogram
	categoryBalance   *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the ledger collectors with reg. Passing nil
// uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeting_operations_total",
				Help: "Total number of budgeting operations by outcome",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "budgeting_operation_duration_milliseconds",
				Help:    "Budgeting operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeting_transactions_total",
				Help: "Total number of transactions posted",
			},
			[]string{"kind"},
		),
		transactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgeting_transaction_amount",
				Help:    "Absolute amount of posted transactions",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"kind"},
		),
		transfersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeting_fund_transfers_total",
				Help: "Total number of fund transfers by outcome",
			},
			[]string{"status"},
		),
		transferAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "budgeting_fund_transfer_amount",
				Help:    "Amount moved by successful fund transfers",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		categoryBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "budgeting_category_balance",
				Help: "Balance of a category after its last change",
			},
			[]string{"budget", "category"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case metricOperation:
		m.operationsTotal.WithLabelValues(tags["operation"], status).Inc()
	case metricTransactionPosted:
		m.transactionsTotal.WithLabelValues(tags["kind"]).Inc()
	case metricFundsTransferred:
		if status != "" {
			m.transfersTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case metricOperationDuration:
		m.operationDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case metricTransferAmount:
		m.transferAmount.Observe(value)
	case metricTransactionAmount:
		m.transactionAmount.WithLabelValues(tags["kind"]).Observe(value)
	case metricCategoryBalance:
		m.categoryBalance.WithLabelValues(tags["budget"], tags["category"]).Set(value)
	}
}

type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string) {}

func (noopMetrics) RecordProcessingTime(string, time.Duration) {}

func (noopMetrics) RecordGauge(string, float64, map[string]string) {}
