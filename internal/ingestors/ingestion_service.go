package ingestors

import (
	"context"
	"io"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/events"
	"log-analyzer/internal/lexers"
	"log-analyzer/internal/models"
	"log-analyzer/internal/records"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/streams"
)

const (
	modeSequential  = "sequential"
	modePartitioned = "partitioned"
)

// IngestResult is everything a report run needs from one pass over a log file.
type IngestResult struct {
	Aggregator *aggregators.URLAggregator
	// UserAgents counts accepted lines per user-agent family.
	UserAgents map[string]int64
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// Ingest reads every line of logFile. Rejected lines are counted, not returned; the error
	// is a *svcerrors.ServiceError when the file itself cannot be read.
	Ingest(ctx context.Context, logFile *models.LogFile) (*IngestResult, error)
}

type ingestionService struct {
	logStorage filestorages.FileStorage
	lexer      lexers.Lexer
	builder    records.RecordBuilder
	userAgents UserAgentSummarizer

	workers      int
	maxLineBytes int
}

func NewIngestionService(
	logStorage filestorages.FileStorage,
	lexer lexers.Lexer,
	builder records.RecordBuilder,
	userAgents UserAgentSummarizer,
	cfg configs.IngestionConfig,
) IngestionService {
	return &ingestionService{
		logStorage:   logStorage,
		lexer:        lexer,
		builder:      builder,
		userAgents:   userAgents,
		workers:      cfg.Workers,
		maxLineBytes: cfg.MaxLineBytes,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, logFile *models.LogFile) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting log file %s with %d worker(s)", logFile.Name, s.workers)

	stream, err := openLogStream(ctx, s.logStorage, logFile.Name)
	if err != nil {
		svcErr := errInternalLogOpenFailed(err)
		metricFilesIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	defer func() {
		if err := stream.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close log stream")
		}
	}()

	mode := modeSequential
	if s.workers > 1 {
		mode = modePartitioned
	}
	defer metrics.ObserveSince(metricIngestDurationSeconds.WithLabelValues(mode), time.Now())

	var result *IngestResult
	if mode == modePartitioned {
		result, err = s.ingestPartitioned(ctx, stream)
	} else {
		result, err = s.ingestSequential(ctx, stream)
	}
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricFilesIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		}
		return nil, err
	}

	logger.Info().
		Int64("lines", result.Aggregator.Lines()).
		Int64("error_lines", result.Aggregator.Errors()).
		Msgf("ingested log file %s", logFile.Name)
	metricFilesIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (s *ingestionService) ingestSequential(ctx context.Context, stream io.Reader) (*IngestResult, error) {
	processor := newLineProcessor(s.lexer, s.builder, s.userAgents)

	err := s.scanLines(ctx, stream, func(event events.LogLineEvent) error {
		_ = processor.Handle(ctx, &event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := newIngestResult()
	processor.mergeInto(result)
	return result, nil
}

// ingestPartitioned fans lines out to one processor per partition and merges the lanes once
// the reader is done and every partition is drained.
func (s *ingestionService) ingestPartitioned(ctx context.Context, stream io.Reader) (*IngestResult, error) {
	queue := streams.NewPartitionedQueue[events.LogLineEvent](s.workers)

	processors := make([]*lineProcessor, queue.PartitionCount())
	handlers := make([]streams.LogLineHandler, queue.PartitionCount())
	for i := range processors {
		processors[i] = newLineProcessor(s.lexer, s.builder, s.userAgents)
		handlers[i] = processors[i]
	}

	consumer, err := streams.NewLogLineConsumer(queue, handlers)
	if err != nil {
		return nil, errInternalLineWorkersFailed(err)
	}
	producer := streams.NewLogLineProducer(queue)

	consumer.Start(ctx)
	readErr := s.scanLines(ctx, stream, func(event events.LogLineEvent) error {
		return producer.Produce(ctx, event)
	})
	producer.Close()

	if err := consumer.Wait(); err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			return nil, svcErr
		}
		return nil, errInternalLogReadFailed(err)
	}
	if readErr != nil {
		return nil, readErr
	}
	// lines still queued at cancellation are drained unhandled
	if err := ctx.Err(); err != nil {
		return nil, errInternalLogReadFailed(err)
	}

	result := newIngestResult()
	for _, processor := range processors {
		processor.mergeInto(result)
	}
	return result, nil
}

// scanLines numbers lines from 1 and hands them to emit until the stream ends.
func (s *ingestionService) scanLines(ctx context.Context, stream io.Reader, emit func(events.LogLineEvent) error) error {
	scanner := newLineScanner(stream, s.maxLineBytes)

	var lineNo int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return errInternalLogReadFailed(err)
		}
		lineNo++
		if err := emit(events.LogLineEvent{LineNo: lineNo, Text: scanner.Text()}); err != nil {
			return errInternalLogReadFailed(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errInternalLogReadFailed(err)
	}
	return nil
}

func newIngestResult() *IngestResult {
	return &IngestResult{
		Aggregator: aggregators.NewURLAggregator(),
		UserAgents: make(map[string]int64),
	}
}
