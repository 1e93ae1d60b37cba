package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row outcome label values.
const (
	OutcomeStandardized = "standardized"
	OutcomeRejected     = "rejected"
)

// Metrics holds Prometheus instruments for batch-level observability.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RowsProcessed  *prometheus.CounterVec
	RowDuration    prometheus.Histogram
	RequestLatency prometheus.Histogram
	TokenRefreshes prometheus.Counter
}

// New registers batch metrics with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RowsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uspsbatch",
			Name:      "rows_processed_total",
			Help:      "Input rows processed, labeled by outcome.",
		}, []string{"outcome"}),
		RowDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "uspsbatch",
			Name:      "row_duration_seconds",
			Help:      "End-to-end processing time per row.",
			Buckets:   prometheus.DefBuckets,
		}),
		RequestLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "uspsbatch",
			Name:      "usps_request_duration_seconds",
			Help:      "Latency of USPS address validation calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		TokenRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "uspsbatch",
			Name:      "token_refreshes_total",
			Help:      "Successful OAuth token refreshes.",
		}),
	}
}

// ObserveRow records one processed row.
func (m *Metrics) ObserveRow(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RowsProcessed.WithLabelValues(outcome).Inc()
	m.RowDuration.Observe(d.Seconds())
}

// ObserveRequest records one USPS validation round-trip.
func (m *Metrics) ObserveRequest(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.Observe(d.Seconds())
}

// TokenRefreshed records one successful token refresh.
func (m *Metrics) TokenRefreshed() {
	if m == nil {
		return
	}
	m.TokenRefreshes.Inc()
}
