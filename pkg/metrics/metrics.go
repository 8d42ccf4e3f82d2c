package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurants_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// AuthorizationDecisions counts ownership checks by operation and outcome (allow|deny).
	AuthorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurants_authorization_decisions_total",
			Help: "Total number of resource authorization decisions",
		},
		[]string{"operation", "result"},
	)

	// DomainEvents counts published restaurant and dish events by type and outcome (ok|error).
	DomainEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurants_domain_events_total",
			Help: "Total number of domain events published",
		},
		[]string{"type", "result"},
	)

	// RealtimeConnections tracks open websocket subscribers.
	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "restaurants_realtime_connections",
			Help: "Number of connected realtime subscribers",
		},
	)

	// HTTPRequests counts served requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurants_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurants_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
