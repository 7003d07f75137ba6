// Package metrics exposes prometheus counters for the editor's background
// persistence traffic.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
)

// Registry holds all metrics for the application
type Registry struct {
	// Autosave
	AutosaveTotal    *prometheus.CounterVec
	AutosaveBytes    prometheus.Gauge
	AutosaveDuration prometheus.Histogram

	// Icon registry sync
	RegistryReadsTotal  *prometheus.CounterVec
	RegistryWritesTotal *prometheus.CounterVec
	RegistryIcons       prometheus.Gauge

	// Editor
	CommitsTotal prometheus.Counter
	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.AutosaveTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "routemap_autosave_total",
			Help: "Draft autosave writes by result",
		},
		[]string{"status"}, // ok, error
	)
	r.AutosaveBytes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "routemap_autosave_bytes",
			Help: "Size of the last draft written",
		},
	)
	r.AutosaveDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "routemap_autosave_duration_seconds",
			Help:    "Duration of draft writes in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	r.RegistryReadsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "routemap_registry_reads_total",
			Help: "Icon registry reads and change notifications by destination and result",
		},
		[]string{"destination", "status"}, // ok, error, not_found, invalid
	)
	r.RegistryWritesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "routemap_registry_writes_total",
			Help: "Icon registry writes by destination and result",
		},
		[]string{"destination", "status"}, // ok, error, skipped
	)
	r.RegistryIcons = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "routemap_registry_icons",
			Help: "Number of custom icons in the local list",
		},
	)

	r.CommitsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "routemap_commits_total",
			Help: "Graph store commits",
		},
	)
	r.GraphNodes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "routemap_graph_nodes",
			Help: "Nodes in the current graph",
		},
	)
	r.GraphEdges = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "routemap_graph_edges",
			Help: "Edges in the current graph",
		},
	)
	return r
}

// RecordAutosave records one draft write
func (r *Registry) RecordAutosave(status string, size int, duration time.Duration) {
	r.AutosaveTotal.WithLabelValues(status).Inc()
	if status == StatusOK {
		r.AutosaveBytes.Set(float64(size))
	}
	r.AutosaveDuration.Observe(duration.Seconds())
}

// RecordRegistryRead records one read or notification from a destination
func (r *Registry) RecordRegistryRead(destination, status string) {
	r.RegistryReadsTotal.WithLabelValues(destination, status).Inc()
}

// RecordRegistryWrite records one write attempt to a destination
func (r *Registry) RecordRegistryWrite(destination, status string) {
	r.RegistryWritesTotal.WithLabelValues(destination, status).Inc()
}

// RecordCommit records a store commit and the resulting graph size
func (r *Registry) RecordCommit(nodes, edges int) {
	r.CommitsTotal.Inc()
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// Gatherer returns the underlying prometheus registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
