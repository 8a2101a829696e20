package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	matchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recordex",
			Name:      "match_requests_total",
			Help:      "Total number of match requests by outcome",
		},
		[]string{"operation", "outcome"},
	)

	matchCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recordex",
			Name:      "match_candidate_set_size",
			Help:      "Candidate set size after deduplication",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
		[]string{"operation"},
	)
)

// RegisterMatchingMetrics registers matching pipeline metrics with the
// default registry. Called once from the composition root.
func RegisterMatchingMetrics() {
	prometheus.MustRegister(matchRequestsTotal)
	prometheus.MustRegister(matchCandidates)
}

// Outcome labels for match request metrics.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// ObserveMatch records one match request with its outcome and candidate count.
func ObserveMatch(operation, outcome string, candidates int) {
	matchRequestsTotal.WithLabelValues(operation, outcome).Inc()
	matchCandidates.WithLabelValues(operation).Observe(float64(candidates))
}
