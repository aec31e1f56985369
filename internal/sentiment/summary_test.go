package sentiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/thaisenti/internal/models"
)

func result(s models.Sentiment, score float64, at time.Time) models.AnalysisResult {
	return models.AnalysisResult{Sentiment: s, Score: score, CreatedAt: at}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	summary := Summarize([]models.AnalysisResult{
		result(models.Positive, 0.9, now),
		result(models.Positive, 0.7, now),
		result(models.Negative, 0.8, now),
		result(models.Neutral, 0.6, now),
	})

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Positive)
	assert.Equal(t, 1, summary.Negative)
	assert.Equal(t, 1, summary.Neutral)
	assert.InDelta(t, 0.75, summary.AverageScore, 1e-9)
	assert.Equal(t, models.Positive, summary.Dominant)
	assert.InDelta(t, 50.0, summary.Share(models.Positive), 1e-9)
}

func TestSummarizeTiesAreNeutral(t *testing.T) {
	now := time.Now()
	summary := Summarize([]models.AnalysisResult{
		result(models.Positive, 0.9, now),
		result(models.Negative, 0.9, now),
	})
	assert.Equal(t, models.Neutral, summary.Dominant)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, models.Neutral, empty.Dominant)
	assert.Equal(t, 0.0, empty.Share(models.Positive))
}

func TestTimelineIsOldestFirst(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	points := Timeline([]models.AnalysisResult{
		result(models.Negative, 0.4, t0.Add(2*time.Minute)),
		result(models.Positive, 0.9, t0),
		result(models.Neutral, 0.5, t0.Add(time.Minute)),
	})

	if assert.Len(t, points, 3) {
		assert.Equal(t, t0, points[0].At)
		assert.Equal(t, models.Neutral, points[1].Sentiment)
		assert.Equal(t, 0.4, points[2].Score)
	}
}
