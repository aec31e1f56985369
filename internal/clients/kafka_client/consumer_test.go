package kafka_client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedReader struct {
	steps []func() (*kafka.Message, error)
	calls int
}

func (r *scriptedReader) ReadMessage(time.Duration) (*kafka.Message, error) {
	step := r.steps[r.calls%len(r.steps)]
	r.calls++
	return step()
}

func message(topic string, partition int32, offset kafka.Offset) *kafka.Message {
	return &kafka.Message{TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: partition, Offset: offset}}
}

func TestMessageIteratorNext(t *testing.T) {
	want := message("t", 0, 7)
	reader := &scriptedReader{steps: []func() (*kafka.Message, error){
		func() (*kafka.Message, error) { return nil, errors.New("transient") },
		func() (*kafka.Message, error) { return want, nil },
	}}
	it := NewMessageIterator(reader)
	it.retry = time.Millisecond

	got, err := it.Next(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 2, reader.calls)
}

func TestMessageIteratorTimeoutAndBrokersDown(t *testing.T) {
	it := NewMessageIterator(&scriptedReader{steps: []func() (*kafka.Message, error){
		func() (*kafka.Message, error) { return nil, kafka.NewError(kafka.ErrTimedOut, "timed out", false) },
	}})
	_, err := it.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoMessage)

	it = NewMessageIterator(&scriptedReader{steps: []func() (*kafka.Message, error){
		func() (*kafka.Message, error) { return nil, kafka.NewError(kafka.ErrAllBrokersDown, "down", false) },
	}})
	_, err = it.Next(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMessage)
}

func TestMessageIteratorGivesUp(t *testing.T) {
	reader := &scriptedReader{steps: []func() (*kafka.Message, error){
		func() (*kafka.Message, error) { return nil, errors.New("broken") },
	}}
	it := NewMessageIterator(reader)
	it.retry = time.Millisecond

	_, err := it.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, MAX_RETRIES, reader.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = it.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeCommitter struct {
	fail      int
	committed [][]kafka.TopicPartition
}

func (f *fakeCommitter) CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error) {
	if f.fail > 0 {
		f.fail--
		return nil, errors.New("coordinator moved")
	}
	f.committed = append(f.committed, offsets)
	return offsets, nil
}

func TestCommitHandlerRetries(t *testing.T) {
	committer := &fakeCommitter{fail: 1}
	ch := NewCommitHandler(committer)
	ch.retry = time.Millisecond

	offsets := []kafka.TopicPartition{{Partition: 0, Offset: 3}}
	require.NoError(t, ch.Commit(context.Background(), offsets))
	assert.Len(t, committer.committed, 1)

	require.NoError(t, ch.Commit(context.Background(), nil))
	assert.Len(t, committer.committed, 1, "nothing to commit")

	committer.fail = MAX_RETRIES
	assert.Error(t, ch.Commit(context.Background(), offsets))
}

func TestOffsetTracker(t *testing.T) {
	tracker := NewOffsetTracker()
	tracker.Track(message("results", 0, 4))
	tracker.Track(message("results", 0, 2))
	tracker.Track(message("results", 1, 9))
	tracker.Track(&kafka.Message{})

	got := map[int32]kafka.Offset{}
	for _, tp := range tracker.Drain() {
		assert.Equal(t, "results", *tp.Topic)
		got[tp.Partition] = tp.Offset
	}
	assert.Equal(t, map[int32]kafka.Offset{0: 5, 1: 10}, got)
	assert.Empty(t, tracker.Drain())
}
