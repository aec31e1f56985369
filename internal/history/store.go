package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/clients"
	"github.com/spacesedan/thaisenti/internal/models"
)

// ErrUnavailable marks a failure of the history backend itself.
var ErrUnavailable = errors.New("history store unavailable")

// Store keeps analysis results per browser session.
type Store interface {
	// Add appends records in the order given; the oldest beyond the store's limit are dropped.
	Add(ctx context.Context, session string, records ...models.AnalysisResult) error
	// List returns up to limit records, newest first. limit <= 0 means everything kept.
	List(ctx context.Context, session string, limit int) ([]models.AnalysisResult, error)
	Clear(ctx context.Context, session string) error
}

// New builds the store selected by settings.HistoryBackend. The returned func releases
// any connection the store holds.
func New(ctx context.Context, settings config.Settings) (Store, func(), error) {
	switch settings.HistoryBackend {
	case config.HISTORY_MEMORY, "":
		return NewMemoryStore(settings.HistoryLimit), func() {}, nil
	case config.HISTORY_VALKEY:
		client, err := clients.NewValkeyClient(clients.ValkeyConfig{
			Address:  settings.ValkeyAddr,
			Password: settings.ValkeyPassword,
			TLS:      settings.ValkeyTLS,
		})
		if err != nil {
			return nil, nil, err
		}
		return NewValkeyStore(client, settings.HistoryLimit), client.Close, nil
	case config.HISTORY_DYNAMODB:
		awsCfg, err := clients.LoadAWSConfig(ctx, clients.AWSConfig{
			Region:   settings.AWSRegion,
			Endpoint: settings.AWSEndpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		db := clients.NewDynamoDBClient(awsCfg, settings.AWSEndpoint)
		return NewDynamoStore(db, settings.HistoryTable, settings.HistoryLimit), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", settings.HistoryBackend)
	}
}

func newestFirst(records []models.AnalysisResult, limit int) []models.AnalysisResult {
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.AnalysisResult, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out
}
