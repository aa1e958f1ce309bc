package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the map enrichment pipeline.
type Metrics struct {
	BuildDuration    prometheus.Histogram
	SkippedDocuments prometheus.Counter
	FeaturesEnriched prometheus.Counter
	JoinMisses       prometheus.Counter
}

// New creates and registers the pipeline metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		BuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sidokepung_peta_build_duration_seconds",
			Help:    "Duration of a full map enrichment run",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SkippedDocuments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidokepung_peta_skipped_documents_total",
			Help: "Boundary documents skipped because their features were absent or malformed",
		}),
		FeaturesEnriched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidokepung_peta_features_enriched_total",
			Help: "Boundary polygons enriched with dominance data",
		}),
		JoinMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sidokepung_peta_join_misses_total",
			Help: "Polygons with no matching resident data",
		}),
	}
}

// ObserveBuild records the duration of a run started at start.
func (m *Metrics) ObserveBuild(start time.Time) {
	m.BuildDuration.Observe(time.Since(start).Seconds())
}

// IncrementSkippedDocuments records one skipped boundary document.
func (m *Metrics) IncrementSkippedDocuments() {
	m.SkippedDocuments.Inc()
}

// AddEnriched records a run's enriched feature count and join misses.
func (m *Metrics) AddEnriched(features, misses int) {
	m.FeaturesEnriched.Add(float64(features))
	m.JoinMisses.Add(float64(misses))
}
