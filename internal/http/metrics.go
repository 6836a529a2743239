package http

import (
	"log-analyzer/internal/shared/metrics"
)

var httpLabels = []string{"method", "route", "status", metrics.FieldErrorCode}

var (
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
			Help:      "HTTP requests served by route and outcome.",
		},
		httpLabels,
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		httpLabels,
	)
)
