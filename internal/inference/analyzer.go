package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/clients"
	"github.com/spacesedan/thaisenti/internal/models"
)

// Analyzer runs a sentiment model. Analyze returns exactly one prediction per input, in order.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, texts []string) ([]models.Prediction, error)
	Healthy(ctx context.Context) bool
}

// ErrBackendUnavailable is returned for a backend left out of this build.
var ErrBackendUnavailable = errors.New("sentiment backend not compiled in")

// newHugotAnalyzer is registered by hugot.go, built only with the "hugot" tag.
var newHugotAnalyzer func(config.Settings) (Analyzer, error)

// New builds the analyzer selected by settings.Backend, wrapped in an LRU cache when enabled.
func New(ctx context.Context, settings config.Settings) (Analyzer, error) {
	var analyzer Analyzer

	switch settings.Backend {
	case config.BACKEND_HUGGINGFACE:
		client := clients.NewHuggingFaceClient(clients.HuggingFaceConfig{
			BaseURL:    settings.HFAPIURL,
			Token:      settings.HFAPIToken,
			Production: settings.IsProduction(),
		})
		analyzer = NewHuggingFaceAnalyzer(client, settings.ModelName)
	case config.BACKEND_HUGOT:
		if newHugotAnalyzer == nil {
			return nil, fmt.Errorf("%w: %s (build with -tags hugot,ORT)", ErrBackendUnavailable, settings.Backend)
		}
		a, err := newHugotAnalyzer(settings)
		if err != nil {
			return nil, err
		}
		analyzer = a
	case config.BACKEND_OPENAI:
		client, err := clients.NewOpenAIClient(settings.OpenAIAPIKey, settings.OpenAIModel)
		if err != nil {
			return nil, err
		}
		analyzer = NewOpenAIAnalyzer(client)
	case config.BACKEND_VADER:
		analyzer = NewVaderAnalyzer()
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", settings.Backend)
	}

	slog.Info("[Inference] Analyzer ready",
		slog.String("backend", analyzer.Name()),
		slog.Int("cache_size", settings.CacheSize))

	if settings.CacheSize > 0 {
		return NewCachedAnalyzer(analyzer, settings.CacheSize)
	}
	return analyzer, nil
}

// Close releases analyzer resources if it holds any.
func Close(a Analyzer) error {
	if c, ok := a.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func top(scores []models.LabelScore) (models.LabelScore, bool) {
	if len(scores) == 0 {
		return models.LabelScore{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}
