package ingestors

import (
	"context"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/events"
	"log-analyzer/internal/lexers"
	"log-analyzer/internal/models"
	"log-analyzer/internal/records"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
)

// lineProcessor runs lexer → builder → aggregator for one lane of lines. It owns its
// aggregator and user-agent counts, so it must only be driven by a single goroutine.
type lineProcessor struct {
	lexer      lexers.Lexer
	builder    records.RecordBuilder
	userAgents UserAgentSummarizer

	aggregator  *aggregators.URLAggregator
	familyCount map[string]int64
	familyCache map[string]string
}

func newLineProcessor(lexer lexers.Lexer, builder records.RecordBuilder, userAgents UserAgentSummarizer) *lineProcessor {
	return &lineProcessor{
		lexer:       lexer,
		builder:     builder,
		userAgents:  userAgents,
		aggregator:  aggregators.NewURLAggregator(),
		familyCount: make(map[string]int64),
		familyCache: make(map[string]string),
	}
}

// Handle implements streams.LogLineHandler. The returned error describes a rejected line;
// the line has already been counted.
func (p *lineProcessor) Handle(ctx context.Context, event *events.LogLineEvent) *svcerrors.ServiceError {
	record, err := p.builder.Build(p.lexer.Tokenize(event.Text))
	if err != nil {
		p.aggregator.Reject()
		return p.rejected(ctx, event, errInvalidMalformedLine(err))
	}

	if err := p.aggregator.Ingest(record); err != nil {
		return p.rejected(ctx, event, errInvalidBadRequestField(err))
	}

	p.familyCount[p.family(record.HttpUserAgent)]++
	metricLinesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (p *lineProcessor) rejected(ctx context.Context, event *events.LogLineEvent, svcErr *svcerrors.ServiceError) *svcerrors.ServiceError {
	loggers.Ctx(ctx).Debug().
		Int64(loggers.FieldLineNo, event.LineNo).
		Str(loggers.FieldErrorCode, svcErr.Code).
		Err(svcErr.Cause).
		Msg("line rejected")
	metricLinesTotal.WithLabelValues(svcErr.Code).Inc()
	return svcErr
}

// family memoizes the summarizer; the same handful of agents repeat across millions of lines.
func (p *lineProcessor) family(userAgent models.FieldValue) string {
	if userAgent.IsNull() {
		return p.userAgents.Family(userAgent)
	}
	if family, ok := p.familyCache[userAgent.Text]; ok {
		return family
	}
	family := p.userAgents.Family(userAgent)
	p.familyCache[userAgent.Text] = family
	return family
}

// mergeInto folds this lane's results into result.
func (p *lineProcessor) mergeInto(result *IngestResult) {
	result.Aggregator.Merge(p.aggregator)
	for family, count := range p.familyCount {
		result.UserAgents[family] += count
	}
}
