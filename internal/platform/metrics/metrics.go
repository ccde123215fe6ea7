// Package metrics exposes Prometheus counters for generated artifacts.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the generator counters on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ArtifactsGenerated *prometheus.CounterVec
	ArtifactBytes      *prometheus.CounterVec
	GenerationFailures *prometheus.CounterVec
	RecordsSynthesized prometheus.Counter
}

// New creates and registers all counters.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ArtifactsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagen_artifacts_generated_total",
			Help: "Total number of artifacts generated",
		},
		[]string{"kind"},
	)
	m.ArtifactBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagen_artifact_bytes_total",
			Help: "Total size of generated artifacts in bytes",
		},
		[]string{"kind"},
	)
	m.GenerationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qagen_generation_failures_total",
			Help: "Total number of failed generation requests",
		},
		[]string{"kind", "reason"},
	)
	m.RecordsSynthesized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "qagen_records_synthesized_total",
			Help: "Total number of synthetic patient records produced",
		},
	)

	m.registry.MustRegister(
		m.ArtifactsGenerated,
		m.ArtifactBytes,
		m.GenerationFailures,
		m.RecordsSynthesized,
		collectors.NewGoCollector(),
	)
	return m
}

// ArtifactGenerated counts one artifact of kind with the given size.
func (m *Metrics) ArtifactGenerated(kind string, size int) {
	if m == nil {
		return
	}
	m.ArtifactsGenerated.WithLabelValues(kind).Inc()
	m.ArtifactBytes.WithLabelValues(kind).Add(float64(size))
}

// GenerationFailed counts a failed request of kind.
func (m *Metrics) GenerationFailed(kind, reason string) {
	if m == nil {
		return
	}
	m.GenerationFailures.WithLabelValues(kind, reason).Inc()
}

// RecordsAdded counts synthesized records.
func (m *Metrics) RecordsAdded(n int) {
	if m == nil {
		return
	}
	m.RecordsSynthesized.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
