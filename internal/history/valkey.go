package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/thaisenti/internal/clients"
	"github.com/spacesedan/thaisenti/internal/models"
)

const (
	VALKEY_HISTORY_PREFIX = "thaisenti:history:"
	VALKEY_HISTORY_TTL    = 86400 // seconds
	valkeyRetries         = 3
)

// ValkeyStore keeps each session's history in a list, newest at the head.
type ValkeyStore struct {
	client *clients.ValkeyClient
	limit  int
}

func NewValkeyStore(client *clients.ValkeyClient, limit int) *ValkeyStore {
	return &ValkeyStore{client: client, limit: limit}
}

func historyKey(session string) string {
	return VALKEY_HISTORY_PREFIX + session
}

func (s *ValkeyStore) Add(ctx context.Context, session string, records ...models.AnalysisResult) error {
	if len(records) == 0 {
		return nil
	}

	elements := make([]string, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("[ValkeyStore] marshal record: %w", err)
		}
		elements = append(elements, string(data))
	}

	key := historyKey(session)
	b := s.client.B()
	// Pinned: retries resend the same commands.
	cmds := []valkey.Completed{
		b.Lpush().Key(key).Element(elements...).Build().Pin(),
		b.Expire().Key(key).Seconds(VALKEY_HISTORY_TTL).Build().Pin(),
	}
	if s.limit > 0 {
		cmds = append(cmds, b.Ltrim().Key(key).Start(0).Stop(int64(s.limit-1)).Build().Pin())
	}

	for _, res := range s.client.DoMultiWithRetry(ctx, valkeyRetries, cmds...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyStore] add: %w", err)
		}
	}

	slog.Debug("[ValkeyStore] Stored history records",
		slog.String("session_id", session),
		slog.Int("count", len(records)))
	return nil
}

func (s *ValkeyStore) List(ctx context.Context, session string, limit int) ([]models.AnalysisResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	res := s.client.DoWithRetry(ctx, s.client.B().Lrange().Key(historyKey(session)).Start(0).Stop(stop).Build().Pin(), valkeyRetries)
	raw, err := res.AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("[ValkeyStore] list: %w", err)
	}

	records := make([]models.AnalysisResult, 0, len(raw))
	for _, item := range raw {
		var r models.AnalysisResult
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			slog.Warn("[ValkeyStore] Skipping unreadable record",
				slog.String("session_id", session),
				slog.String("error", err.Error()))
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *ValkeyStore) Clear(ctx context.Context, session string) error {
	res := s.client.DoWithRetry(ctx, s.client.B().Del().Key(historyKey(session)).Build().Pin(), valkeyRetries)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[ValkeyStore] clear: %w", err)
	}
	return nil
}
