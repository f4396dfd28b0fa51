// Package metrics provides Prometheus metrics instrumentation for the
// dataset service.
//
// Metrics exposed:
//   - tabled_datasets_loaded_total: Counter of loaded datasets by source and format
//   - tabled_resample_operations_total: Counter of resample actions by frequency, aggregation and outcome
//   - tabled_exports_total: Counter of export downloads by format
//   - tabled_render_seconds: Histogram of chart render duration
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	DatasetsLoaded *prometheus.CounterVec
	ResampleOps    *prometheus.CounterVec
	Exports        *prometheus.CounterVec
	RenderSeconds  prometheus.Histogram
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DatasetsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabled_datasets_loaded_total",
			Help: "Datasets loaded, by source kind and file format",
		}, []string{"source", "format"}),

		ResampleOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabled_resample_operations_total",
			Help: "Resample actions, by frequency token, aggregation and outcome",
		}, []string{"frequency", "aggregation", "outcome"}),

		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabled_exports_total",
			Help: "Export downloads, by file format",
		}, []string{"format"}),

		RenderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabled_render_seconds",
			Help:    "Time spent rendering charts to PNG",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
