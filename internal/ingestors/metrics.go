package ingestors

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricLinesTotal counts every line read, labelled with ING_1000/ING_1001 when it was rejected.
	metricLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "lines_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricFilesIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "files_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricIngestDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "duration_seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"mode"},
	)
)
