package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// offsetCommitter is the subset of *kafka.Consumer the commit handler needs.
type offsetCommitter interface {
	CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
}

type CommitHandler struct {
	committer offsetCommitter
	retry     time.Duration
}

func NewCommitHandler(committer offsetCommitter) *CommitHandler {
	return &CommitHandler{committer: committer, retry: RETRY_DELAY}
}

// Commit stores the given positions. Each offset must already point past the last
// processed message.
func (ch *CommitHandler) Commit(ctx context.Context, offsets []kafka.TopicPartition) error {
	if ch.committer == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}
	if len(offsets) == 0 {
		return nil
	}

	var err error
	for i := 0; i < MAX_RETRIES; i++ {
		if _, err = ch.committer.CommitOffsets(offsets); err == nil {
			slog.Debug("[KafkaCommitHandler] Successfully committed offsets",
				slog.Int("partitions", len(offsets)))
			return nil
		}

		slog.Warn("[KafkaCommitHandler] Failed to commit offsets, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[KafkaCommitHandler] All Kafka brokers are down. Aborting commit")
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ch.retry):
		}
	}

	return fmt.Errorf("[KafkaCommitHandler] Failed to commit offsets after %d retries: %w", MAX_RETRIES, err)
}

// OffsetTracker remembers the next offset to commit for every partition seen.
type OffsetTracker struct {
	next map[string]map[int32]kafka.Offset
}

func NewOffsetTracker() *OffsetTracker {
	return &OffsetTracker{next: make(map[string]map[int32]kafka.Offset)}
}

func (t *OffsetTracker) Track(msg *kafka.Message) {
	tp := msg.TopicPartition
	if tp.Topic == nil {
		return
	}
	parts, ok := t.next[*tp.Topic]
	if !ok {
		parts = make(map[int32]kafka.Offset)
		t.next[*tp.Topic] = parts
	}
	if next := tp.Offset + 1; next > parts[tp.Partition] {
		parts[tp.Partition] = next
	}
}

// Drain returns the tracked positions and forgets them.
func (t *OffsetTracker) Drain() []kafka.TopicPartition {
	var out []kafka.TopicPartition
	for topic, parts := range t.next {
		for partition, offset := range parts {
			topic := topic
			out = append(out, kafka.TopicPartition{Topic: &topic, Partition: partition, Offset: offset})
		}
	}
	t.next = make(map[string]map[int32]kafka.Offset)
	return out
}
