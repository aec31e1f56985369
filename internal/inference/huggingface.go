package inference

import (
	"context"
	"fmt"

	"github.com/spacesedan/thaisenti/internal/clients"
	"github.com/spacesedan/thaisenti/internal/models"
)

// HuggingFaceAnalyzer calls a hosted text-classification model over the inference API.
type HuggingFaceAnalyzer struct {
	client *clients.HuggingFaceClient
	model  string
}

func NewHuggingFaceAnalyzer(client *clients.HuggingFaceClient, model string) *HuggingFaceAnalyzer {
	return &HuggingFaceAnalyzer{client: client, model: model}
}

func (a *HuggingFaceAnalyzer) Name() string {
	return "huggingface:" + a.model
}

func (a *HuggingFaceAnalyzer) Analyze(ctx context.Context, texts []string) ([]models.Prediction, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batch, err := a.client.Classify(ctx, a.model, texts)
	if err != nil {
		return nil, fmt.Errorf("huggingface classify: %w", err)
	}

	predictions := make([]models.Prediction, 0, len(batch))
	for i, scores := range batch {
		best, ok := top(scores)
		if !ok {
			return nil, fmt.Errorf("huggingface classify: no labels for input %d", i)
		}
		predictions = append(predictions, models.Prediction{Label: best.Label, Score: best.Score})
	}
	return predictions, nil
}

func (a *HuggingFaceAnalyzer) Healthy(ctx context.Context) bool {
	return a.client.HealthCheck(ctx, a.model)
}
