package reports

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricReportGeneratedTotal counts report runs by outcome. error_code is empty for a stored
	// report, RPT_1001 when the report already existed and AGG_1000 when the error gate refused.
	metricReportGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "generated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricReportDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "duration_seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{metrics.FieldErrorCode},
	)
)
