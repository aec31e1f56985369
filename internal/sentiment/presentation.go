package sentiment

import (
	"fmt"
	"math"

	"github.com/spacesedan/thaisenti/internal/models"
)

type style struct {
	title       string
	emoji       string
	color       string
	level       string
	explanation string
}

var styles = map[models.Sentiment]style{
	models.Positive: {
		title:       "Positive Sentiment",
		emoji:       "😊",
		color:       "#28a745",
		level:       "success",
		explanation: "This text expresses positive emotions, such as happiness, joy, or approval.",
	},
	models.Negative: {
		title:       "Negative Sentiment",
		emoji:       "😞",
		color:       "#dc3545",
		level:       "error",
		explanation: "This text expresses negative emotions, such as sadness, anger, or disapproval.",
	},
	models.Neutral: {
		title:       "Neutral Sentiment",
		emoji:       "😐",
		color:       "#ffc107",
		level:       "warning",
		explanation: "This text expresses neutral emotions, without strong positive or negative feelings.",
	},
}

func Present(s models.Sentiment, score float64) models.Presentation {
	st, ok := styles[s]
	if !ok {
		st = styles[models.Neutral]
	}
	score = ClampScore(score)
	return models.Presentation{
		Title:       st.title,
		Emoji:       st.emoji,
		Color:       st.color,
		Level:       st.level,
		Explanation: st.explanation,
		Score:       fmt.Sprintf("%.2f", score),
		Percent:     math.Round(score*10000) / 100,
	}
}

func Emoji(s models.Sentiment) string {
	return Present(s, 0).Emoji
}

func Color(s models.Sentiment) string {
	return Present(s, 0).Color
}

// ClampScore keeps a confidence inside [0,1]; NaN becomes 0.
func ClampScore(score float64) float64 {
	switch {
	case math.IsNaN(score) || score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
