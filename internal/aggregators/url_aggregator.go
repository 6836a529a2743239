package aggregators

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/metrics"
)

// URLAggregator groups request_time samples by URL and counts the lines it saw.
// It is not safe for concurrent use; partition workers each own one and merge at the end.
type URLAggregator struct {
	samples map[string][]float64
	lines   int64
	errors  int64
}

func NewURLAggregator() *URLAggregator {
	return &URLAggregator{samples: make(map[string][]float64)}
}

// Reject counts a line that failed before a record could be built.
func (a *URLAggregator) Reject() {
	a.lines++
	a.errors++
}

// Ingest counts the line and, when the record carries a URL and a numeric request time,
// appends the sample under that URL.
func (a *URLAggregator) Ingest(record *models.LogRecord) error {
	a.lines++

	url, requestTime, err := extractSample(record)
	if err != nil {
		a.errors++
		return err
	}

	a.samples[url] = append(a.samples[url], requestTime)
	return nil
}

// Merge folds other into a. other must not be used afterwards.
func (a *URLAggregator) Merge(other *URLAggregator) {
	for url, samples := range other.samples {
		a.samples[url] = append(a.samples[url], samples...)
	}
	a.lines += other.lines
	a.errors += other.errors
}

func (a *URLAggregator) Lines() int64 {
	return a.lines
}

func (a *URLAggregator) Errors() int64 {
	return a.errors
}

// ErrorRate is the share of rejected lines in percent, 0 when nothing was seen.
func (a *URLAggregator) ErrorRate() float64 {
	if a.lines == 0 {
		return 0
	}
	return 100 * float64(a.errors) / float64(a.lines)
}

// Finalize applies the optional error-rate gate and hands out the collected samples.
// A nil threshold disables the gate. An error rate equal to the threshold passes.
func (a *URLAggregator) Finalize(errorRateThreshold *float64) (map[string][]float64, error) {
	if errorRateThreshold != nil && a.ErrorRate() > *errorRateThreshold {
		metricFinalizedTotal.WithLabelValues(codeUnprocessableTooManyErrors).Inc()
		return nil, errUnprocessableTooManyErrors(a.ErrorRate(), *errorRateThreshold)
	}
	metricFinalizedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return a.samples, nil
}

func extractSample(record *models.LogRecord) (string, float64, error) {
	request, ok := record.Request.AsString()
	if !ok {
		return "", 0, fmt.Errorf("%w: request is %s", models.ErrBadRequestField, record.Request.Kind)
	}
	parts := strings.Fields(request)
	if len(parts) < 2 {
		return "", 0, fmt.Errorf("%w: no url in request %q", models.ErrBadRequestField, request)
	}

	rawTime, ok := record.RequestTime.AsString()
	if !ok {
		return "", 0, fmt.Errorf("%w: request_time is %s", models.ErrBadRequestField, record.RequestTime.Kind)
	}
	requestTime, err := strconv.ParseFloat(rawTime, 64)
	if err != nil || math.IsNaN(requestTime) || math.IsInf(requestTime, 0) {
		return "", 0, fmt.Errorf("%w: request_time %q is not a number", models.ErrBadRequestField, rawTime)
	}

	return parts[1], requestTime, nil
}
