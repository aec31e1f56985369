package models

import "time"

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Sentiments lists every label in display order.
var Sentiments = []Sentiment{Positive, Neutral, Negative}

const (
	SourceSingle = "single"
	SourceBatch  = "batch"
	SourceQuiz   = "quiz"
)

// Prediction is the top label a model produced for one input text.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type AnalysisResult struct {
	ID        string    `json:"id" dynamodbav:"id"`
	SessionID string    `json:"session_id" dynamodbav:"session_id"`
	Text      string    `json:"text" dynamodbav:"text"`
	RawLabel  string    `json:"raw_label" dynamodbav:"raw_label"`
	Sentiment Sentiment `json:"sentiment" dynamodbav:"sentiment"`
	Score     float64   `json:"score" dynamodbav:"score"`
	Source    string    `json:"source" dynamodbav:"source"`
	Backend   string    `json:"backend" dynamodbav:"backend"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Presentation is how a result is decorated in the UI.
type Presentation struct {
	Title       string  `json:"title"`
	Emoji       string  `json:"emoji"`
	Color       string  `json:"color"`
	Level       string  `json:"level"`
	Explanation string  `json:"explanation"`
	Score       string  `json:"score"`
	Percent     float64 `json:"percent"`
}

type Summary struct {
	Total        int       `json:"total"`
	Positive     int       `json:"positive"`
	Negative     int       `json:"negative"`
	Neutral      int       `json:"neutral"`
	AverageScore float64   `json:"average_score"`
	Dominant     Sentiment `json:"dominant"`
}

func (s Summary) Count(label Sentiment) int {
	switch label {
	case Positive:
		return s.Positive
	case Negative:
		return s.Negative
	default:
		return s.Neutral
	}
}

// Share is the percentage of results carrying label.
func (s Summary) Share(label Sentiment) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Count(label)) * 100 / float64(s.Total)
}

type TimelinePoint struct {
	At        time.Time `json:"at"`
	Score     float64   `json:"score"`
	Sentiment Sentiment `json:"sentiment"`
}
