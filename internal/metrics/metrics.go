package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biobank_http_requests_total",
			Help: "HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biobank_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biobank_transitions_total",
			Help: "Lifecycle transitions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ZoneOccupancy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "biobank_zone_occupied",
			Help: "Current occupied slots per storage zone",
		},
		[]string{"zone"},
	)

	// Bumped whenever a release would drive a zone's occupancy negative.
	// Any non-zero value means the occupancy books are wrong somewhere.
	IntegrityAlarmsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biobank_integrity_alarms_total",
			Help: "Occupancy underflow alarms",
		},
	)
)
