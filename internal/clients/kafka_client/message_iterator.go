package kafka_client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// messageReader is the subset of *kafka.Consumer the iterator needs.
type messageReader interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
}

// ErrNoMessage means the read timed out without a message; callers should just poll again.
var ErrNoMessage = errors.New("no message available")

type MessageIterator struct {
	reader  messageReader
	timeout time.Duration
	retry   time.Duration
}

func NewMessageIterator(reader messageReader) *MessageIterator {
	return &MessageIterator{
		reader:  reader,
		timeout: READ_TIMEOUT,
		retry:   RETRY_DELAY,
	}
}

// Next returns the next message, ErrNoMessage after an idle poll, or an error once reads
// keep failing.
func (it *MessageIterator) Next(ctx context.Context) (*kafka.Message, error) {
	if it.reader == nil {
		return nil, errors.New("[KafkaIterator] Kafka consumer has not been initialized")
	}

	for i := 0; i < MAX_RETRIES; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := it.reader.ReadMessage(it.timeout)
		if err == nil {
			return msg, nil
		}

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) {
			switch kafkaErr.Code() {
			case kafka.ErrTimedOut:
				return nil, ErrNoMessage
			case kafka.ErrAllBrokersDown:
				slog.Error("[KafkaIterator] All Kafka brokers are down. Aborting")
				return nil, err
			}
		}

		slog.Warn("[KafkaIterator] Failed to read message, retrying...",
			slog.Int("attempt", i+1),
			slog.Int("max_retries", MAX_RETRIES),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(it.retry):
		}
	}
	return nil, errors.New("[KafkaIterator] Failed to read message after retries")
}
