package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spacesedan/thaisenti/internal/quiz"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

type quizAnswerRequest struct {
	Guess string `json:"guess"`
}

type healthResponse struct {
	Status          string     `json:"status"`
	Backend         string     `json:"backend"`
	AnalyzerHealthy bool       `json:"analyzer_healthy"`
	CheckedAt       *time.Time `json:"checked_at,omitempty"`
}

func (s *Server) analyzeAPIHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.analyzer.AnalyzeText(r.Context(), SessionFromContext(r.Context()), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultView(result))
}

func (s *Server) batchAPIHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := req.Text
	if len(req.Lines) > 0 {
		input = strings.Join(req.Lines, "\n")
	}

	batch, err := s.analyzer.AnalyzeBatch(r.Context(), SessionFromContext(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBatchView(batch))
}

func (s *Server) historyAPIHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.analyzer.History(r.Context(), SessionFromContext(r.Context()), s.historyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryView{Results: newResultViews(records), Summary: sentiment.Summarize(records)})
}

func (s *Server) clearHistoryAPIHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.analyzer.ClearHistory(r.Context(), SessionFromContext(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) quizQuestionAPIHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, QuizQuestionView{
		Question: s.quiz.Random(),
		Score:    s.quiz.Score(SessionFromContext(r.Context())),
	})
}

func (s *Server) quizAnswerAPIHandler(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	guess, ok := sentiment.Parse(req.Guess)
	if !ok {
		writeError(w, r, quiz.ErrInvalidGuess)
		return
	}

	result, err := s.quiz.Grade(r.Context(), SessionFromContext(r.Context()), chi.URLParam(r, "id"), guess)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		Backend:         s.analyzer.Backend(),
		AnalyzerHealthy: s.health.Healthy(),
	}
	if checked := s.health.CheckedAt(); !checked.IsZero() {
		resp.CheckedAt = &checked
	}
	if !resp.AnalyzerHealthy && resp.CheckedAt != nil {
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}
