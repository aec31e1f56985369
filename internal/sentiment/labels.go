package sentiment

import (
	"strings"

	"github.com/spacesedan/thaisenti/internal/models"
)

// Normalize maps a raw model label onto one of the three display sentiments.
// WangchanBERTa emits pos/neu/neg/q; anything that is not clearly polar is neutral.
func Normalize(raw string) models.Sentiment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pos", "positive":
		return models.Positive
	case "neg", "negative":
		return models.Negative
	default:
		return models.Neutral
	}
}

// Parse reads a user supplied label, e.g. a quiz guess. Unlike Normalize it rejects unknown values.
func Parse(raw string) (models.Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pos", "positive":
		return models.Positive, true
	case "neg", "negative":
		return models.Negative, true
	case "neu", "neutral":
		return models.Neutral, true
	default:
		return "", false
	}
}

// ShortLabel is the model-style label (pos/neg/neu).
func ShortLabel(s models.Sentiment) string {
	switch s {
	case models.Positive:
		return "pos"
	case models.Negative:
		return "neg"
	default:
		return "neu"
	}
}
