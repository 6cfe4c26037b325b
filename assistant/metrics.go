package assistant

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects assistant pipeline counters on a dedicated registry.
// All record methods are nil-safe so components can run without metrics
// wired (tests mostly do).
type Metrics struct {
	registry *prometheus.Registry

	queriesTotal        *prometheus.CounterVec
	resolutionFallbacks *prometheus.CounterVec
	retrievalFallbacks  *prometheus.CounterVec
	queryLatencySeconds *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashwise",
			Subsystem: "assistant",
			Name:      "queries_total",
			Help:      "Total assistant queries by resulting action type.",
		}, []string{"action_type"}),
		resolutionFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashwise",
			Subsystem: "assistant",
			Name:      "resolution_fallbacks_total",
			Help:      "Intent resolutions that fell back to the rule engine, by reason.",
		}, []string{"reason"}),
		retrievalFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashwise",
			Subsystem: "assistant",
			Name:      "retrieval_fallbacks_total",
			Help:      "Context retrievals that fell back to the static catalog, by reason.",
		}, []string{"reason"}),
		queryLatencySeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashwise",
			Subsystem: "assistant",
			Name:      "query_duration_seconds",
			Help:      "End-to-end assistant query latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action_type"}),
	}
	registry.MustRegister(
		m.queriesTotal,
		m.resolutionFallbacks,
		m.retrievalFallbacks,
		m.queryLatencySeconds,
	)
	return m
}

func (m *Metrics) RecordQuery(actionType ActionType, seconds float64) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(string(actionType)).Inc()
	m.queryLatencySeconds.WithLabelValues(string(actionType)).Observe(seconds)
}

func (m *Metrics) RecordResolutionFallback(reason string) {
	if m == nil {
		return
	}
	m.resolutionFallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordRetrievalFallback(reason string) {
	if m == nil {
		return
	}
	m.retrievalFallbacks.WithLabelValues(reason).Inc()
}

// HTTPHandler exposes the registry in Prometheus text format.
func (m *Metrics) HTTPHandler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
