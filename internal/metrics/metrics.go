package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artesapos",
			Name:      "api_requests_total",
			Help:      "Backend requests by table, operation and outcome.",
		},
		[]string{"table", "operation", "outcome"},
	)

	apiRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artesapos",
			Name:      "api_retries_total",
			Help:      "Bulk save retry attempts by table.",
		},
		[]string{"table"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiRetries)
	})
}

// IncRequest increments the request counter for a table/operation pair.
func IncRequest(table, operation, outcome string) {
	apiRequests.WithLabelValues(table, operation, outcome).Inc()
}

// IncRetry increments the retry counter for a table.
func IncRetry(table string) {
	apiRetries.WithLabelValues(table).Inc()
}
