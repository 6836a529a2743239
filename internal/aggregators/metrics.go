package aggregators

import (
	"log-analyzer/internal/shared/metrics"
)

// metricFinalizedTotal counts aggregations that reached the error-rate gate.
//
// error_code is empty when the samples were handed to the reducer and AGG_1000 when the
// run was refused because too many lines were rejected.
//
// Example scenario:
//   - A log of 1000 lines has 120 malformed lines and the threshold is 10%
//   - Finalize refuses the samples and the metric is incremented with error_code="AGG_1000"
var (
	metricFinalizedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "finalized_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
