package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the protocol gateway.
type Metrics struct {
	Operations     *prometheus.CounterVec
	ReputationGain prometheus.Histogram
	VoteWeight     prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "laurel_operations_total",
			Help: "Protocol operations by name and outcome.",
		}, []string{"op", "outcome"}),
		ReputationGain: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laurel_reputation_gain",
			Help:    "Reputation gained per successful action application.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		VoteWeight: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laurel_vote_weight",
			Help:    "Weight of cast governance votes.",
			Buckets: prometheus.ExponentialBuckets(100, 2, 8),
		}),
	}
}

// ObserveOp records one operation outcome.
func (m *Metrics) ObserveOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}
