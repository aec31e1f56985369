package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/thaisenti/internal/models"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, pngSignature), "expected PNG output")
}

func TestGauge(t *testing.T) {
	for _, score := range []float64{0, 0.42, 0.87, 1, 1.7} {
		data, err := Gauge(score, models.Positive)
		require.NoError(t, err, "score %v", score)
		assertPNG(t, data)
	}
}

func TestPie(t *testing.T) {
	data, err := Pie(models.Summary{Total: 4, Positive: 2, Negative: 1, Neutral: 1})
	require.NoError(t, err)
	assertPNG(t, data)

	data, err = Pie(models.Summary{Total: 3, Negative: 3})
	require.NoError(t, err)
	assertPNG(t, data)
}

func TestPieNoData(t *testing.T) {
	_, err := Pie(models.Summary{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLine(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	points := []models.TimelinePoint{
		{At: start, Score: 0.91, Sentiment: models.Positive},
		{At: start.Add(2 * time.Minute), Score: 0.55, Sentiment: models.Neutral},
		{At: start.Add(5 * time.Minute), Score: 0.78, Sentiment: models.Negative},
	}

	data, err := Line(points)
	require.NoError(t, err)
	assertPNG(t, data)
}

func TestLineSinglePoint(t *testing.T) {
	data, err := Line([]models.TimelinePoint{{At: time.Now(), Score: 0.6, Sentiment: models.Neutral}})
	require.NoError(t, err)
	assertPNG(t, data)
}

func TestLineSameBatch(t *testing.T) {
	at := time.Now()
	points := []models.TimelinePoint{
		{At: at, Score: 0.9, Sentiment: models.Positive},
		{At: at.Add(50 * time.Nanosecond), Score: 0.7, Sentiment: models.Negative},
		{At: at.Add(100 * time.Nanosecond), Score: 0.5, Sentiment: models.Neutral},
	}

	data, err := Line(points)
	require.NoError(t, err)
	assertPNG(t, data)
}

func TestLineNoData(t *testing.T) {
	_, err := Line(nil)
	assert.ErrorIs(t, err, ErrNoData)
}
