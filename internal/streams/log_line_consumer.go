package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"log-analyzer/internal/events"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
)

// LogLineHandler processes the lines of one partition. A handler is only ever called from
// its partition's worker goroutine.
type LogLineHandler interface {
	Handle(ctx context.Context, event *events.LogLineEvent) *svcerrors.ServiceError
}

type LogLineConsumer interface {
	Start(ctx context.Context)
	// Wait blocks until every partition is drained. It returns the first failure: a panic
	// recovered from a handler, as a SYS_9000 service error, or the context error when lines
	// were drained without being handled after cancellation.
	Wait() error
}

type logLineConsumer struct {
	queue    *PartitionedQueue[events.LogLineEvent]
	handlers []LogLineHandler

	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewLogLineConsumer pairs handlers[i] with partition i.
func NewLogLineConsumer(queue *PartitionedQueue[events.LogLineEvent], handlers []LogLineHandler) (LogLineConsumer, error) {
	if len(handlers) != queue.PartitionCount() {
		return nil, fmt.Errorf("got %d handlers for %d partitions", len(handlers), queue.PartitionCount())
	}
	return &logLineConsumer{
		queue:    queue,
		handlers: handlers,
	}, nil
}

// Start spawns 1 worker goroutine per partition.
func (consumer *logLineConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex)
		}()
	}
}

func (consumer *logLineConsumer) Wait() error {
	consumer.wg.Wait()

	consumer.mu.Lock()
	defer consumer.mu.Unlock()
	return consumer.err
}

func (consumer *logLineConsumer) runPartitionWorker(ctx context.Context, partitionIndex int) {
	partitionID := strconv.Itoa(partitionIndex)
	handler := consumer.handlers[partitionIndex]
	ctx = loggers.Ctx(ctx).With().
		Str(loggers.FieldPartitionId, partitionID).
		Logger().WithContext(ctx)

	// Keep draining after cancellation or a panic so the producer never blocks on a full lane.
	for event := range consumer.queue.partition(partitionIndex) {
		if consumer.failed() {
			continue
		}
		if err := ctx.Err(); err != nil {
			consumer.fail(err)
			continue
		}
		consumer.consume(ctx, partitionID, handler, &event)
	}
}

func (consumer *logLineConsumer) consume(ctx context.Context, partitionID string, handler LogLineHandler, event *events.LogLineEvent) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Int64(loggers.FieldLineNo, event.LineNo).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricLineConsumedTotal.WithLabelValues(partitionID, svcErr.Code).Inc()
			consumer.fail(svcErr)
		}
	}()

	svcError := handler.Handle(ctx, event)
	if svcError != nil {
		metricLineConsumedTotal.WithLabelValues(partitionID, svcError.Code).Inc()
	} else {
		metricLineConsumedTotal.WithLabelValues(partitionID, metrics.ValueNoError).Inc()
	}
}

func (consumer *logLineConsumer) fail(err error) {
	consumer.mu.Lock()
	defer consumer.mu.Unlock()
	if consumer.err == nil {
		consumer.err = err
	}
}

func (consumer *logLineConsumer) failed() bool {
	consumer.mu.Lock()
	defer consumer.mu.Unlock()
	return consumer.err != nil
}
