package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/thaisenti/internal/models"
)

func TestNormalize(t *testing.T) {
	cases := map[string]models.Sentiment{
		"pos":      models.Positive,
		" POS ":    models.Positive,
		"positive": models.Positive,
		"neg":      models.Negative,
		"Negative": models.Negative,
		"neu":      models.Neutral,
		"q":        models.Neutral,
		"LABEL_0":  models.Neutral,
		"":         models.Neutral,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "raw label %q", raw)
	}
}

func TestParse(t *testing.T) {
	s, ok := Parse("neutral")
	assert.True(t, ok)
	assert.Equal(t, models.Neutral, s)

	s, ok = Parse("neg")
	assert.True(t, ok)
	assert.Equal(t, models.Negative, s)

	_, ok = Parse("q")
	assert.False(t, ok)
}

func TestShortLabel(t *testing.T) {
	for _, s := range models.Sentiments {
		assert.Equal(t, s, Normalize(ShortLabel(s)))
	}
}

func TestPresent(t *testing.T) {
	p := Present(models.Positive, 0.876)
	assert.Equal(t, "Positive Sentiment", p.Title)
	assert.Equal(t, "😊", p.Emoji)
	assert.Equal(t, "success", p.Level)
	assert.Equal(t, "0.88", p.Score)
	assert.InDelta(t, 87.6, p.Percent, 0.001)
	assert.Contains(t, p.Explanation, "happiness")

	n := Present(models.Negative, 0.5)
	assert.Equal(t, "😞", n.Emoji)
	assert.Equal(t, "error", n.Level)
	assert.Contains(t, n.Explanation, "disapproval")

	u := Present(models.Sentiment("mixed"), 1.7)
	assert.Equal(t, "Neutral Sentiment", u.Title)
	assert.Equal(t, "😐", u.Emoji)
	assert.Equal(t, "1.00", u.Score)
	assert.Equal(t, 100.0, u.Percent)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.2))
	assert.Equal(t, 1.0, ClampScore(3))
	assert.Equal(t, 0.42, ClampScore(0.42))
}
