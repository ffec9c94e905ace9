package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// annotation service.
type Metrics struct {
	RowsIngested     prometheus.Counter
	RowsSkipped      prometheus.Counter
	DatasetsLoaded   prometheus.Counter
	MarkersPublished prometheus.Counter

	ResolveDuration prometheus.Histogram
	PlaceDuration   prometheus.Histogram
	DatasetRows     prometheus.Histogram

	CurrentMarkers prometheus.Gauge
	ServiceRunning prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "band_atlas",
			Name:      "rows_ingested_total",
			Help:      "Total CSV data rows accepted into grouping.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "band_atlas",
			Name:      "rows_skipped_total",
			Help:      "Total rows excluded for invalid or out-of-range coordinates.",
		}),
		DatasetsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "band_atlas",
			Name:      "datasets_loaded_total",
			Help:      "Total successful CSV uploads.",
		}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "band_atlas",
			Name:      "markers_published_total",
			Help:      "Total markers published to the Kafka sink.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "band_atlas",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a complete group-and-resolve rebuild.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PlaceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "band_atlas",
			Name:      "label_place_duration_seconds",
			Help:      "Duration of one label placement pass.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		DatasetRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "band_atlas",
			Name:      "dataset_rows",
			Help:      "Number of data rows per uploaded CSV.",
			Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
		CurrentMarkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "band_atlas",
			Name:      "current_markers",
			Help:      "Markers in the current snapshot.",
		}),
		ServiceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "band_atlas",
			Name:      "service_running",
			Help:      "1 while the service is active, 0 after shutdown.",
		}),
	}

	prometheus.MustRegister(
		m.RowsIngested,
		m.RowsSkipped,
		m.DatasetsLoaded,
		m.MarkersPublished,
		m.ResolveDuration,
		m.PlaceDuration,
		m.DatasetRows,
		m.CurrentMarkers,
		m.ServiceRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsIngested:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "band_atlas", Name: "rows_ingested_total"}),
		RowsSkipped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "band_atlas", Name: "rows_skipped_total"}),
		DatasetsLoaded:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "band_atlas", Name: "datasets_loaded_total"}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "band_atlas", Name: "markers_published_total"}),
		ResolveDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "band_atlas", Name: "resolve_duration_seconds"}),
		PlaceDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "band_atlas", Name: "label_place_duration_seconds"}),
		DatasetRows:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "band_atlas", Name: "dataset_rows"}),
		CurrentMarkers:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "band_atlas", Name: "current_markers"}),
		ServiceRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "band_atlas", Name: "service_running"}),
	}
}
