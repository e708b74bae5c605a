package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveFetch("article", OutcomeOK)
	m.ObserveFetch("article", OutcomeOK)
	m.ObserveFetch("article", OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fetches.WithLabelValues("article", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fetches.WithLabelValues("article", OutcomeNotFound)))
}

func TestObserveSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSearch(10 * time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("article", OutcomeOK)
		m.ObserveRender("article")
		m.ObserveSearch(time.Second)
		m.ObserveStale()
	})
}
