// Package metrics exposes Prometheus instrumentation for the scan pipeline.
// All Metrics methods are nil-receiver safe so components can run
// uninstrumented in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the pipeline's collectors.
type Metrics struct {
	resolutionsTotal *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
	sourceLatency    *prometheus.HistogramVec
	dealsFound       prometheus.Counter
	dealScores       prometheus.Histogram
}

// New registers the pipeline collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slabwatch",
			Name:      "resolutions_total",
			Help:      "Price resolutions by outcome (resolved or reason code).",
		}, []string{"outcome"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slabwatch",
			Name:      "resolution_cache_ops_total",
			Help:      "Resolution cache lookups by result.",
		}, []string{"result"}),
		sourceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "slabwatch",
			Name:      "price_source_latency_seconds",
			Help:      "Latency of price source calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		dealsFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slabwatch",
			Name:      "deals_found_total",
			Help:      "Listings scored at or above the deal threshold.",
		}),
		dealScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slabwatch",
			Name:      "deal_scores",
			Help:      "Distribution of computed deal scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
	}
	reg.MustRegister(m.resolutionsTotal, m.cacheOps, m.sourceLatency, m.dealsFound, m.dealScores)
	return m
}

// CountResolution records one resolution outcome.
func (m *Metrics) CountResolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(outcome).Inc()
}

// CountCache records one cache lookup result ("hit" or "miss").
func (m *Metrics) CountCache(result string) {
	if m == nil {
		return
	}
	m.cacheOps.WithLabelValues(result).Inc()
}

// ObserveSourceLatency records one source call duration.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.sourceLatency.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveScore records a computed deal score, counting it as a found deal
// when it clears the threshold.
func (m *Metrics) ObserveScore(score, dealThreshold int) {
	if m == nil {
		return
	}
	m.dealScores.Observe(float64(score))
	if score >= dealThreshold {
		m.dealsFound.Inc()
	}
}

// Serve exposes the registry on addr under /metrics. Blocks until the
// server fails.
func Serve(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Info().Str("component", "metrics").Str("addr", addr).Msg("serving metrics")
	return http.ListenAndServe(addr, mux)
}
