package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProber struct {
	calls atomic.Int32
}

func (f *flakyProber) Name() string { return "flaky" }

// Healthy alternates, starting unhealthy.
func (f *flakyProber) Healthy(context.Context) bool {
	return f.calls.Add(1)%2 == 0
}

func TestMonitorAnalyzerHealth(t *testing.T) {
	prober := &flakyProber{}
	health := &AnalyzerHealth{}
	assert.True(t, health.CheckedAt().IsZero())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorAnalyzerHealth(ctx, prober, 5*time.Millisecond, health)
		close(done)
	}()

	require.Eventually(t, func() bool { return prober.calls.Load() >= 1 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return prober.calls.Load() >= 3 }, time.Second, time.Millisecond)
	assert.False(t, health.CheckedAt().IsZero())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}

	assert.Equal(t, prober.calls.Load()%2 == 0, health.Healthy())
}
