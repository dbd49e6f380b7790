// Package metrics defines the Prometheus metric collectors used across the
// pipeline and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	RecordsPartitionedTotal prometheus.Counter
	ValuesWrittenTotal      *prometheus.CounterVec
	FieldsObserved          prometheus.Gauge
	DocumentsTrainedTotal   prometheus.Counter
	VocabularySize          prometheus.Gauge
	CategoryCount           prometheus.Gauge
	PredictionsTotal        *prometheus.CounterVec
	CacheHitsTotal          prometheus.Counter
	CacheMissesTotal        prometheus.Counter
	StageDuration           *prometheus.HistogramVec
	ArtifactBytes           prometheus.Gauge
}

// New creates all Prometheus metrics and registers them with the default
// registerer.
func New() *Metrics {
	return NewFor(prometheus.DefaultRegisterer)
}

// NewFor creates all Prometheus metrics and registers them with reg.
func NewFor(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsPartitionedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "records_partitioned_total",
				Help: "Total JSON records consumed by the prepare stage.",
			},
		),
		ValuesWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "values_written_total",
				Help: "Total values written to the corpus tree, by field name.",
			},
			[]string{"field"},
		),
		FieldsObserved: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "fields_observed",
				Help: "Number of distinct field names seen in the last prepare run.",
			},
		),
		DocumentsTrainedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "documents_trained_total",
				Help: "Total training documents consumed by the train stage.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vocabulary_size",
				Help: "Number of distinct terms in the trained vocabulary.",
			},
		),
		CategoryCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "category_count",
				Help: "Number of categories in the trained model.",
			},
		),
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictions_total",
				Help: "Total predictions by outcome (scored, prior_only, cache_hit).",
			},
			[]string{"outcome"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of prediction cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of prediction cache misses.",
			},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"stage"},
		),
		ArtifactBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "artifact_bytes",
				Help: "Size in bytes of the last written model artifact.",
			},
		),
	}

	reg.MustRegister(
		m.RecordsPartitionedTotal,
		m.ValuesWrittenTotal,
		m.FieldsObserved,
		m.DocumentsTrainedTotal,
		m.VocabularySize,
		m.CategoryCount,
		m.PredictionsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.StageDuration,
		m.ArtifactBytes,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
