// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (gin full path), status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinpoint_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pinpoint_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pinpoint_websocket_connections",
			Help: "Number of open realtime connections",
		},
	)

	// WebsocketEvents counts realtime events. Labels: direction (in|out), event.
	WebsocketEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinpoint_websocket_events_total",
			Help: "Total number of realtime events received and sent",
		},
		[]string{"direction", "event"},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinpoint_messages_sent_total",
			Help: "Total number of direct messages stored",
		},
	)

	NearbyCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinpoint_nearby_cache_lookups_total",
			Help: "Nearby review cache lookups by outcome (hit|miss|error)",
		},
		[]string{"outcome"},
	)
)
