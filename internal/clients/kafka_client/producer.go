package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/utils"
)

// messageProducer is the subset of *kafka.Producer the publisher needs.
type messageProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Events() chan kafka.Event
	Flush(timeoutMs int) int
	Close()
}

// Publisher buffers analysis results and ships them to Kafka as JSON batches keyed by session.
type Publisher struct {
	producer messageProducer
	topic    string
	buffer   *utils.BatchBuffer[models.AnalysisResult]
	interval time.Duration
	retry    time.Duration

	flushMu   sync.Mutex
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewPublisher(cfg KafkaConfig) (*Publisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.topic()))

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "thaisenti-webui"
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"client.id":                             clientID,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return newPublisher(p, cfg.topic()), nil
}

func newPublisher(p messageProducer, topic string) *Publisher {
	return &Publisher{
		producer: p,
		topic:    topic,
		buffer:   utils.NewBatchBuffer[models.AnalysisResult](BATCH_SIZE),
		interval: BATCH_TIMEOUT,
		retry:    RETRY_DELAY,
	}
}

// Run flushes on a timer and drains delivery reports until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.drainEvents(ctx)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("[KafkaClient] Publisher stopping, flushing remaining results")
			p.flush(context.Background())
			return
		case <-ticker.C:
			p.flush(ctx)
		}
	}
}

func (p *Publisher) drainEvents(ctx context.Context) {
	events := p.producer.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case *kafka.Message:
				if e.TopicPartition.Error != nil {
					slog.Warn("[KafkaClient] Delivery failed",
						slog.String("key", string(e.Key)),
						slog.String("error", e.TopicPartition.Error.Error()))
				}
			case kafka.Error:
				slog.Error("[KafkaClient] Producer error",
					slog.String("error", e.Error()))
			}
		}
	}
}

// Publish queues results; a full buffer is flushed right away.
func (p *Publisher) Publish(ctx context.Context, results ...models.AnalysisResult) error {
	if len(results) == 0 {
		return nil
	}
	if p.buffer.Add(results...) >= BATCH_SIZE {
		return p.flush(ctx)
	}
	return nil
}

func (p *Publisher) flush(ctx context.Context) error {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	batch := p.buffer.GetAndClear()
	if len(batch) == 0 {
		return nil
	}

	var firstErr error
	for session, results := range groupBySession(batch) {
		if err := p.produce(ctx, session, results); err != nil {
			slog.Error("[KafkaClient] Dropping results after retries",
				slog.String("session_id", session),
				slog.Int("count", len(results)),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	slog.Debug("[KafkaClient] Flushed results",
		slog.String("topic", p.topic),
		slog.Int("batch_size", len(batch)))
	return firstErr
}

func (p *Publisher) produce(ctx context.Context, session string, results []models.AnalysisResult) error {
	value, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("[KafkaClient] marshal results: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(session),
		Value:          value,
	}

	for i := 0; i < MAX_RETRIES; i++ {
		err = p.producer.Produce(msg, nil)
		if err == nil {
			return nil
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.retry):
		}
	}
	return fmt.Errorf("[KafkaClient] produce failed after %d attempts: %w", MAX_RETRIES, err)
}

func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		slog.Info("[KafkaClient] Shutting down Kafka producer...")
		_ = p.flush(context.Background())
		if remaining := p.producer.Flush(FLUSH_TIMEOUT); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		p.producer.Close()
		p.wg.Wait()
		slog.Info("[KafkaClient] Kafka producer shut down")
	})
}

func groupBySession(results []models.AnalysisResult) map[string][]models.AnalysisResult {
	grouped := make(map[string][]models.AnalysisResult)
	for _, r := range results {
		grouped[r.SessionID] = append(grouped[r.SessionID], r)
	}
	return grouped
}
