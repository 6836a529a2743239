package watchers

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricWatchRunsTotal counts report runs triggered by a new log file.
	metricWatchRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWatch,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
