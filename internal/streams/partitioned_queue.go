package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

type PartitionedQueue[T any] struct {
	partitions []chan T
}

func channelsNewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// NewPartitionedQueue creates a queue with numPartitions lanes; values below 1 fall back to
// the default partition count.
func NewPartitionedQueue[T any](numPartitions int) *PartitionedQueue[T] {
	if numPartitions < 1 {
		numPartitions = defaultNumPartitions
	}
	return channelsNewPartitionedQueue[T](numPartitions, defaultBuffer)
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Publish routes msg to the partition owning partitionKey. It blocks while that partition is
// full and gives up when ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close ends every partition. Consumers drain what is buffered and then stop.
func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func (queue *PartitionedQueue[T]) partition(idx int) <-chan T {
	return queue.partitions[idx]
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
