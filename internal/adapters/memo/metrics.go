package memo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts memo traffic per pipeline stage. A nil *Metrics records
// nothing.
type Metrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	compute   *prometheus.HistogramVec
}

// NewMetrics registers the memo collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "memo",
			Name:      "hits_total",
			Help:      "Lookups answered from the memo.",
		}, []string{"stage"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "memo",
			Name:      "misses_total",
			Help:      "Lookups that ran the computation.",
		}, []string{"stage"}),
		evictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chroma",
			Subsystem: "memo",
			Name:      "evictions_total",
			Help:      "Entries dropped from the memo.",
		}, []string{"stage"}),
		compute: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chroma",
			Subsystem: "memo",
			Name:      "compute_seconds",
			Help:      "Time spent computing missed entries.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"stage"}),
	}
}

func (m *Metrics) hit(stage string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(stage).Inc()
}

func (m *Metrics) missed(stage string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(stage).Inc()
}

func (m *Metrics) evicted(stage string) {
	if m == nil {
		return
	}
	m.evictions.WithLabelValues(stage).Inc()
}

// timer starts timing a computation and returns the function that stops it.
func (m *Metrics) timer(stage string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.compute.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
