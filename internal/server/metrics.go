package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus instruments the handlers record into. Each
// server owns its registry so tests can construct servers independently.
type metrics struct {
	registry *prometheus.Registry

	candidateQueries   prometheus.Counter
	membershipChanges  *prometheus.CounterVec
	compositions       *prometheus.CounterVec
	generationDuration prometheus.Histogram
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		registry: registry,
		candidateQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "composer_candidate_queries_total",
			Help: "Number of candidate ranking queries served.",
		}),
		membershipChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "composer_membership_changes_total",
			Help: "Number of membership mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "composer_compositions_total",
			Help: "Number of composition requests by result source.",
		}, []string{"source"}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "composer_generation_duration_seconds",
			Help:    "Wall-clock duration of composition generation.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	registry.MustRegister(
		m.candidateQueries,
		m.membershipChanges,
		m.compositions,
		m.generationDuration,
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeMembership(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.membershipChanges.WithLabelValues(operation, outcome).Inc()
}

func (m *metrics) observeComposition(source string, start time.Time) {
	m.compositions.WithLabelValues(source).Inc()
	m.generationDuration.Observe(time.Since(start).Seconds())
}
