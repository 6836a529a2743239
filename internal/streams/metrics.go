package streams

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	streamLogLine            = "log_line"
	metricLinePublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "lines_published_total",
		},
		[]string{"stream_id"},
	)

	metricLineConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "lines_consumed_total",
		},
		[]string{"partition_id", metrics.FieldErrorCode},
	)
)
