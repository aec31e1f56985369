package quiz

import (
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

// Lesson describes one sentiment for the learning zone.
type Lesson struct {
	Sentiment   models.Sentiment `json:"sentiment"`
	Title       string           `json:"title"`
	Emoji       string           `json:"emoji"`
	Color       string           `json:"color"`
	Explanation string           `json:"explanation"`
	Cues        []string         `json:"cues"`
	Examples    []string         `json:"examples"`
}

var cues = map[models.Sentiment][]string{
	models.Positive: {"ดี (good)", "อร่อย (delicious)", "ประทับใจ (impressed)", "ขอบคุณ (thank you)", "สนุก (fun)"},
	models.Negative: {"แย่ (bad)", "ผิดหวัง (disappointed)", "ไม่แนะนำ (not recommended)", "สกปรก (dirty)", "ช้า (slow)"},
	models.Neutral:  {"questions", "times and prices", "directions", "announcements"},
}

// Lessons returns one lesson per sentiment with examples taken from the question bank.
func (q *Quiz) Lessons() []Lesson {
	lessons := make([]Lesson, 0, len(models.Sentiments))
	for _, label := range models.Sentiments {
		p := sentiment.Present(label, 0)
		lesson := Lesson{
			Sentiment:   label,
			Title:       p.Title,
			Emoji:       p.Emoji,
			Color:       p.Color,
			Explanation: p.Explanation,
			Cues:        cues[label],
		}
		for _, question := range q.bank {
			if question.Expected == label {
				lesson.Examples = append(lesson.Examples, question.Text)
			}
		}
		lessons = append(lessons, lesson)
	}
	return lessons
}
