package web

import (
	"github.com/spacesedan/thaisenti/internal/analysis"
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/quiz"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

// ResultView is a stored result with its display decoration.
type ResultView struct {
	models.AnalysisResult
	Presentation models.Presentation `json:"presentation"`
}

func newResultView(r models.AnalysisResult) ResultView {
	return ResultView{AnalysisResult: r, Presentation: sentiment.Present(r.Sentiment, r.Score)}
}

func newResultViews(results []models.AnalysisResult) []ResultView {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, newResultView(r))
	}
	return views
}

type BatchView struct {
	Results []ResultView   `json:"results"`
	Summary models.Summary `json:"summary"`
}

func newBatchView(b analysis.BatchResult) BatchView {
	return BatchView{Results: newResultViews(b.Results), Summary: b.Summary}
}

type HistoryView struct {
	Results []ResultView   `json:"results"`
	Summary models.Summary `json:"summary"`
}

type QuizQuestionView struct {
	Question models.QuizQuestion `json:"question"`
	Score    models.QuizScore    `json:"score"`
}

// pageData feeds every HTML template; each page reads the fields it needs.
type pageData struct {
	Title    string
	Active   string
	Backend  string
	Error    string
	Text     string
	MaxChars int
	MaxLines int

	Result   *ResultView
	Batch    *BatchView
	History  *HistoryView
	Question *models.QuizQuestion
	Answer   *models.QuizResult
	Score    models.QuizScore
	Lessons  []quiz.Lesson
}
