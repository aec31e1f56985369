package inference

import (
	"context"
	"math"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/thaisenti/internal/models"
)

// VaderAnalyzer is a lexicon fallback that needs no model download. Its lexicon is English,
// so Thai text mostly comes back neutral; it keeps the UI usable offline.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (a *VaderAnalyzer) Name() string {
	return "vader"
}

func (a *VaderAnalyzer) Analyze(ctx context.Context, texts []string) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		predictions = append(predictions, vaderPrediction(a.analyzer.PolarityScores(text).Compound))
	}
	return predictions, nil
}

func (a *VaderAnalyzer) Healthy(context.Context) bool {
	return true
}

func vaderPrediction(compound float64) models.Prediction {
	switch {
	case compound >= 0.20:
		return models.Prediction{Label: "pos", Score: compound}
	case compound <= -0.20:
		return models.Prediction{Label: "neg", Score: -compound}
	default:
		return models.Prediction{Label: "neu", Score: 1 - math.Abs(compound)}
	}
}
