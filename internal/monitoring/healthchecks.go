package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	HEALTHCHECK_TIMER   = 15 * time.Second
	HEALTHCHECK_TIMEOUT = 10 * time.Second
)

// Prober is anything that can report whether its backend answers.
type Prober interface {
	Name() string
	Healthy(ctx context.Context) bool
}

// AnalyzerHealth is the last observed state of the sentiment backend.
type AnalyzerHealth struct {
	healthy   atomic.Bool
	checkedAt atomic.Int64
}

func (h *AnalyzerHealth) Healthy() bool {
	return h.healthy.Load()
}

// CheckedAt is zero until the first probe finishes.
func (h *AnalyzerHealth) CheckedAt() time.Time {
	n := h.checkedAt.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func (h *AnalyzerHealth) store(healthy bool) {
	h.healthy.Store(healthy)
	h.checkedAt.Store(time.Now().UnixNano())
}

// MonitorAnalyzerHealth probes the analyzer once immediately and then every interval
// until ctx is cancelled.
func MonitorAnalyzerHealth(ctx context.Context, analyzer Prober, interval time.Duration, health *AnalyzerHealth) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe(ctx, analyzer, health)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe(ctx, analyzer, health)
		}
	}
}

func probe(ctx context.Context, analyzer Prober, health *AnalyzerHealth) {
	checkCtx, cancel := context.WithTimeout(ctx, HEALTHCHECK_TIMEOUT)
	defer cancel()

	isHealthy := analyzer.Healthy(checkCtx)
	wasHealthy := health.Healthy()
	health.store(isHealthy)

	if !isHealthy {
		slog.Warn("[HealthCheck] Analyzer is unhealthy", slog.String("backend", analyzer.Name()))
	} else if !wasHealthy {
		slog.Info("[HealthCheck] Analyzer is healthy", slog.String("backend", analyzer.Name()))
	}
}
