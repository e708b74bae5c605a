// Package metrics holds the Prometheus collectors for content fetches,
// renders and searches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Fetches        *prometheus.CounterVec
	Renders        *prometheus.CounterVec
	Searches       prometheus.Counter
	SearchDuration prometheus.Histogram
	StaleRenders   prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Fetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credenda_content_fetches_total",
			Help: "Content fetches by document kind and outcome",
		}, []string{"kind", "outcome"}),
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credenda_renders_total",
			Help: "Rendered view-models by view kind",
		}, []string{"view"}),
		Searches: f.NewCounter(prometheus.CounterOpts{
			Name: "credenda_searches_total",
			Help: "Active (non-empty) corpus searches",
		}),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credenda_search_duration_seconds",
			Help:    "Wall time of a corpus search including fan-out fetches",
			Buckets: prometheus.DefBuckets,
		}),
		StaleRenders: f.NewCounter(prometheus.CounterOpts{
			Name: "credenda_stale_renders_total",
			Help: "Session renders discarded because a newer trigger superseded them",
		}),
	}
}

// ObserveFetch records the outcome of one content fetch.
func (m *Metrics) ObserveFetch(kind, outcome string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(kind, outcome).Inc()
}

// ObserveRender records one produced view-model.
func (m *Metrics) ObserveRender(view string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(view).Inc()
}

// ObserveSearch records one active search.
func (m *Metrics) ObserveSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.Searches.Inc()
	m.SearchDuration.Observe(d.Seconds())
}

// ObserveStale records one discarded session render.
func (m *Metrics) ObserveStale() {
	if m == nil {
		return
	}
	m.StaleRenders.Inc()
}
