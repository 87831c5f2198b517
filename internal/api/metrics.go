package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome labels.
const (
	outcomeOK        = "ok"
	outcomeAPIError  = "api_error"
	outcomeNetwork   = "network_error"
	outcomeOpen      = "circuit_open"
	outcomeCacheHit  = "cache_hit"
	outcomeCancelled = "cancelled"
)

type clientMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	breaker  prometheus.Gauge
}

func newClientMetrics(reg prometheus.Registerer) *clientMetrics {
	factory := promauto.With(reg)
	return &clientMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "postdeck",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Backend requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "postdeck",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Backend request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		breaker: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "postdeck",
				Subsystem: "api",
				Name:      "circuit_state",
				Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),
	}
}
