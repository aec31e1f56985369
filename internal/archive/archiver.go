package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/thaisenti/internal/clients/kafka_client"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/utils"
)

const (
	FLUSH_SIZE     = 100
	FLUSH_INTERVAL = 5 * time.Second
	WRITE_ATTEMPTS = 3
)

// Source yields consumed messages; kafka_client.MessageIterator satisfies it.
type Source interface {
	Next(ctx context.Context) (*kafka.Message, error)
}

// Committer stores consumer positions; kafka_client.CommitHandler satisfies it.
type Committer interface {
	Commit(ctx context.Context, offsets []kafka.TopicPartition) error
}

// Archiver copies published analysis results into a durable history store.
// Offsets are committed only after the results they carry were written.
type Archiver struct {
	source    Source
	committer Committer
	store     history.Store
	buffer    *utils.BatchBuffer[models.AnalysisResult]
	offsets   *kafka_client.OffsetTracker
	interval  time.Duration
	retry     time.Duration
}

func NewArchiver(source Source, committer Committer, store history.Store) *Archiver {
	return &Archiver{
		source:    source,
		committer: committer,
		store:     store,
		buffer:    utils.NewBatchBuffer[models.AnalysisResult](FLUSH_SIZE),
		offsets:   kafka_client.NewOffsetTracker(),
		interval:  FLUSH_INTERVAL,
		retry:     time.Second,
	}
}

// ErrWriteFailed stops Run when results could not be stored. Their offsets stay uncommitted and
// the consumer position has already moved past them, so the process must restart from the
// committed position to have them redelivered.
var ErrWriteFailed = errors.New("archive write failed")

// Run consumes until ctx is cancelled or the source fails for good.
func (a *Archiver) Run(ctx context.Context) error {
	lastFlush := time.Now()

	for {
		msg, err := a.source.Next(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// ctx is already done here, flush with a fresh one so buffered results are not lost
			if err := a.flush(context.Background()); err != nil {
				slog.Error("[Archiver] Final flush failed", slog.String("error", err.Error()))
			}
			return nil
		case errors.Is(err, kafka_client.ErrNoMessage):
		case err != nil:
			slog.Error("[Archiver] Kafka Consumer Error", slog.String("error", err.Error()))
			return err
		default:
			a.handle(msg)
		}

		if a.buffer.Full() || time.Since(lastFlush) >= a.interval {
			if err := a.flush(ctx); err != nil {
				return err
			}
			lastFlush = time.Now()
		}
	}
}

func (a *Archiver) handle(msg *kafka.Message) {
	var results []models.AnalysisResult
	if err := json.Unmarshal(msg.Value, &results); err != nil {
		slog.Warn("[Archiver] Skipping malformed message",
			slog.String("key", string(msg.Key)),
			slog.String("error", err.Error()))
		a.offsets.Track(msg)
		return
	}

	a.buffer.Add(results...)
	a.offsets.Track(msg)
}

// flush writes the buffered results and commits their offsets. A failed write returns
// ErrWriteFailed without committing anything.
func (a *Archiver) flush(ctx context.Context) error {
	batch := a.buffer.GetAndClear()
	offsets := a.offsets.Drain()
	if len(batch) == 0 && len(offsets) == 0 {
		return nil
	}

	bySession := make(map[string][]models.AnalysisResult)
	for _, r := range batch {
		bySession[r.SessionID] = append(bySession[r.SessionID], r)
	}

	for session, records := range bySession {
		if err := a.write(ctx, session, records); err != nil {
			slog.Error("[Archiver] Failed to write results, offsets not committed",
				slog.String("session_id", session),
				slog.Int("count", len(records)),
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: session %s: %w", ErrWriteFailed, session, err)
		}
	}

	if err := a.committer.Commit(ctx, offsets); err != nil {
		slog.Warn("[Archiver] Failed to commit offsets", slog.String("error", err.Error()))
		return nil
	}

	slog.Info("[Archiver] Archived results",
		slog.Int("results", len(batch)),
		slog.Int("sessions", len(bySession)))
	return nil
}

func (a *Archiver) write(ctx context.Context, session string, records []models.AnalysisResult) error {
	var err error
	for i := 0; i < WRITE_ATTEMPTS; i++ {
		if err = a.store.Add(ctx, session, records...); err == nil {
			return nil
		}
		slog.Warn("[Archiver] Failed to write results to store",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.retry):
		}
	}
	return err
}
