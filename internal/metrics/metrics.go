// Package metrics defines Prometheus metrics for followscope.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "followscope_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followscope_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followscope_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "followscope_upstream_request_duration_seconds",
			Help:    "Farcaster upstream request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"},
	)

	FIDCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followscope_fid_cache_lookups_total",
			Help: "Username to FID cache lookups by result",
		},
		[]string{"result"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "followscope_websocket_connections",
			Help: "Active log stream WebSocket connections",
		},
	)

	LogLinesRelayed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "followscope_log_lines_relayed_total",
			Help: "Log lines pushed into the relay buffer",
		},
	)

	LogLinesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "followscope_log_lines_dropped_total",
			Help: "Log lines dropped because a broadcast queue was full",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "followscope_sessions_active",
			Help: "Viewer sessions currently held in memory",
		},
	)

	GraphNodes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "followscope_assembled_graph_nodes",
			Help:    "Node count of assembled follow graphs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	GraphEdges = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "followscope_assembled_graph_edges",
			Help:    "Edge count of assembled follow graphs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	MetricsComputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "followscope_metrics_compute_duration_seconds",
			Help:    "Time spent slicing a snapshot and computing its metrics",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		UpstreamDuration, FIDCacheLookups,
		WSConnections, LogLinesRelayed, LogLinesDropped,
		ActiveSessions, GraphNodes, GraphEdges, MetricsComputeDuration,
	)
}
