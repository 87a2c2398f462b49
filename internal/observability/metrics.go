// Package observability registers the prometheus metrics the service exposes.
// Construction takes a registerer so tests can run on isolated registries.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alignscope"

// Metrics holds the service's prometheus collectors. All operations are
// safe for concurrent use.
type Metrics struct {
	// RequestsTotal counts HTTP requests by path, method, and status code.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures HTTP request latency per path.
	RequestDuration *prometheus.HistogramVec

	// GraphBuildsTotal counts graph constructions.
	GraphBuildsTotal prometheus.Counter

	// GraphBuildDuration measures graph construction latency.
	GraphBuildDuration prometheus.Histogram

	// GraphNodes and GraphLinks track the size of the last built graph.
	GraphNodes prometheus.Gauge
	GraphLinks prometheus.Gauge
}

// New creates and registers all service metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by path, method, and status",
			},
			[]string{"path", "method", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by path",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"path"},
		),

		GraphBuildsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_builds_total",
				Help:      "Total graph constructions",
			},
		),

		GraphBuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_build_duration_seconds",
				Help:      "Graph construction latency",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
		),

		GraphNodes: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Node count of the last built graph",
			},
		),

		GraphLinks: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_links",
				Help:      "Link count of the last built graph",
			},
		),
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(path, method string, status int, seconds float64) {
	m.RequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(path).Observe(seconds)
}

// ObserveGraphBuild records one graph construction and its result size.
func (m *Metrics) ObserveGraphBuild(seconds float64, nodes, links int) {
	m.GraphBuildsTotal.Inc()
	m.GraphBuildDuration.Observe(seconds)
	m.GraphNodes.Set(float64(nodes))
	m.GraphLinks.Set(float64(links))
}
