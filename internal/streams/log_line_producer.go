package streams

import (
	"context"
	"strconv"

	"log-analyzer/internal/events"
)

// LogLineProducer publishes access-log lines to a partitioned queue.
//
// The partition key is the line number. Lines carry no identity that needs a single writer
// (every partition owns a private aggregator that is merged at the end), so the key only
// has to spread lines evenly across partitions.
type LogLineProducer interface {
	Produce(ctx context.Context, event events.LogLineEvent) error
	// Close signals that no more lines follow. Produce must not be called afterwards.
	Close()
}

type logLineProducer struct {
	queue *PartitionedQueue[events.LogLineEvent]
}

func NewLogLineProducer(queue *PartitionedQueue[events.LogLineEvent]) LogLineProducer {
	return &logLineProducer{
		queue: queue,
	}
}

func (producer *logLineProducer) Produce(ctx context.Context, event events.LogLineEvent) error {
	partitionKey := strconv.FormatInt(event.LineNo, 10)
	if err := producer.queue.Publish(ctx, partitionKey, event); err != nil {
		return err
	}
	metricLinePublishedTotal.WithLabelValues(streamLogLine).Inc()
	return nil
}

func (producer *logLineProducer) Close() {
	producer.queue.Close()
}
