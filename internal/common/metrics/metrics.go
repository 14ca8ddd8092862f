// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for one generator process.
type Metrics struct {
	registry *prometheus.Registry

	ItemsProcessed      *prometheus.CounterVec
	ItemDuration        *prometheus.HistogramVec
	ScriptsGenerated    *prometheus.CounterVec
	SegmentsSynthesized prometheus.Counter
	CacheLookups        *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ItemsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demo_items_processed_total",
				Help: "Total number of industries processed by outcome",
			},
			[]string{"status"},
		),
		ItemDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "demo_item_duration_seconds",
				Help:    "Duration of one industry demo in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"status"},
		),
		ScriptsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demo_scripts_total",
				Help: "Scripts produced by source (generated or composed)",
			},
			[]string{"source"},
		),
		SegmentsSynthesized: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "demo_segments_synthesized_total",
				Help: "Dialogue lines sent to speech synthesis",
			},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "demo_segment_cache_lookups_total",
				Help: "Segment cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the registry so other exporters can share it.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordItem(status string, d time.Duration) {
	m.ItemsProcessed.WithLabelValues(status).Inc()
	m.ItemDuration.WithLabelValues(status).Observe(d.Seconds())
}

func (m *Metrics) RecordScript(source string) {
	m.ScriptsGenerated.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordSegment() {
	m.SegmentsSynthesized.Inc()
}

// CacheLookup implements cache.Recorder.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
