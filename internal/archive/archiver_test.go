package archive

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/thaisenti/internal/clients/kafka_client"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/models"
)

// queueSource hands out queued messages, then idles until ctx is cancelled.
type queueSource struct {
	mu   sync.Mutex
	msgs []*kafka.Message
	err  error
}

func (q *queueSource) Next(ctx context.Context) (*kafka.Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q.msgs) > 0 {
		msg := q.msgs[0]
		q.msgs = q.msgs[1:]
		return msg, nil
	}
	if q.err != nil {
		return nil, q.err
	}
	time.Sleep(time.Millisecond)
	return nil, kafka_client.ErrNoMessage
}

type recordingCommitter struct {
	mu      sync.Mutex
	commits [][]kafka.TopicPartition
}

func (r *recordingCommitter) Commit(_ context.Context, offsets []kafka.TopicPartition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, offsets)
	return nil
}

func (r *recordingCommitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commits)
}

type failingStore struct {
	history.Store
}

func (failingStore) Add(context.Context, string, ...models.AnalysisResult) error {
	return errors.New("throttled")
}

func resultsMessage(t *testing.T, offset kafka.Offset, results ...models.AnalysisResult) *kafka.Message {
	t.Helper()
	value, err := json.Marshal(results)
	require.NoError(t, err)
	topic := "sentiment-results"
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: 0, Offset: offset},
		Key:            []byte(results[0].SessionID),
		Value:          value,
	}
}

func TestArchiverWritesAndCommits(t *testing.T) {
	source := &queueSource{msgs: []*kafka.Message{
		resultsMessage(t, 10,
			models.AnalysisResult{ID: "1", SessionID: "s1", Sentiment: models.Positive},
			models.AnalysisResult{ID: "2", SessionID: "s1", Sentiment: models.Negative}),
		{TopicPartition: kafka.TopicPartition{Topic: stringPtr("sentiment-results"), Offset: 11}, Value: []byte("{bad")},
		resultsMessage(t, 12, models.AnalysisResult{ID: "3", SessionID: "s2", Sentiment: models.Neutral}),
	}}
	committer := &recordingCommitter{}
	store := history.NewMemoryStore(0)

	a := NewArchiver(source, committer, store)
	a.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return committer.count() > 0 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	s1, err := store.List(context.Background(), "s1", 0)
	require.NoError(t, err)
	assert.Len(t, s1, 2)
	s2, err := store.List(context.Background(), "s2", 0)
	require.NoError(t, err)
	assert.Len(t, s2, 1)

	committer.mu.Lock()
	defer committer.mu.Unlock()
	last := committer.commits[len(committer.commits)-1]
	require.Len(t, last, 1)
	assert.Equal(t, kafka.Offset(13), last[0].Offset)
}

func TestArchiverDoesNotCommitFailedWrites(t *testing.T) {
	source := &queueSource{msgs: []*kafka.Message{
		resultsMessage(t, 1, models.AnalysisResult{ID: "1", SessionID: "s1"}),
	}}
	committer := &recordingCommitter{}

	a := NewArchiver(source, committer, failingStore{})
	a.retry = time.Millisecond
	a.handle(mustNext(t, source))

	assert.ErrorIs(t, a.flush(context.Background()), ErrWriteFailed)
	assert.Equal(t, 0, committer.count())
}

// selectiveStore fails writes for one result id and stores everything else.
type selectiveStore struct {
	*history.MemoryStore
	failID string
}

func (s selectiveStore) Add(ctx context.Context, session string, records ...models.AnalysisResult) error {
	for _, r := range records {
		if r.ID == s.failID {
			return errors.New("throttled")
		}
	}
	return s.MemoryStore.Add(ctx, session, records...)
}

func TestArchiverNeverCommitsPastFailedWrite(t *testing.T) {
	source := &queueSource{msgs: []*kafka.Message{
		resultsMessage(t, 0, models.AnalysisResult{ID: "lost", SessionID: "s1"}),
		resultsMessage(t, 1, models.AnalysisResult{ID: "ok", SessionID: "s1"}),
	}}
	committer := &recordingCommitter{}
	store := selectiveStore{MemoryStore: history.NewMemoryStore(0), failID: "lost"}

	a := NewArchiver(source, committer, store)
	a.retry = time.Millisecond
	a.interval = 0

	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrWriteFailed)

	committer.mu.Lock()
	defer committer.mu.Unlock()
	for _, offsets := range committer.commits {
		for _, tp := range offsets {
			assert.LessOrEqual(t, int64(tp.Offset), int64(0), "committed past an unwritten result")
		}
	}

	source.mu.Lock()
	defer source.mu.Unlock()
	assert.Len(t, source.msgs, 1, "stops consuming after the failed write")
}

func TestArchiverStopsOnSourceError(t *testing.T) {
	source := &queueSource{err: errors.New("all brokers down")}
	a := NewArchiver(source, &recordingCommitter{}, history.NewMemoryStore(0))

	assert.Error(t, a.Run(context.Background()))
}

func mustNext(t *testing.T, s Source) *kafka.Message {
	t.Helper()
	msg, err := s.Next(context.Background())
	require.NoError(t, err)
	return msg
}

func stringPtr(s string) *string { return &s }
