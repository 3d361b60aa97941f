package tradebridge

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// clientMetrics instruments the request pipeline. A nil receiver is a
// no-op, so metrics stay optional.
type clientMetrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	refreshes prometheus.Counter
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	factory := promauto.With(reg)
	return &clientMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradebridge",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method and response status.",
		}, []string{"method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tradebridge",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "End-to-end request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tradebridge",
			Subsystem: "client",
			Name:      "token_refreshes_total",
			Help:      "Completed token refresh calls.",
		}),
	}
}

func (m *clientMetrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *clientMetrics) refreshed() {
	if m == nil {
		return
	}
	m.refreshes.Inc()
}
