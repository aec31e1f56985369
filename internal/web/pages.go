package web

import (
	"log/slog"
	"net/http"

	"github.com/spacesedan/thaisenti/internal/sentiment"
)

func (s *Server) page(title, active string) pageData {
	return pageData{
		Title:    title,
		Active:   active,
		Backend:  s.analyzer.Backend(),
		MaxChars: s.maxChars,
		MaxLines: s.maxLines,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, ok := s.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("[HTTP] Failed to render page",
			slog.String("page", name),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", s.page("Thai Sentiment Analysis", "index"))
}

func (s *Server) analyzeFormHandler(w http.ResponseWriter, r *http.Request) {
	data := s.page("Thai Sentiment Analysis", "index")
	data.Text = r.FormValue("text")

	result, err := s.analyzer.AnalyzeText(r.Context(), SessionFromContext(r.Context()), data.Text)
	if err != nil {
		data.Error = userMessage(err)
		s.render(w, r, statusFor(err), "index", data)
		return
	}

	view := newResultView(result)
	data.Result = &view
	s.render(w, r, http.StatusOK, "index", data)
}

func (s *Server) batchPageHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "batch", s.page("Batch Analysis", "batch"))
}

func (s *Server) batchFormHandler(w http.ResponseWriter, r *http.Request) {
	data := s.page("Batch Analysis", "batch")
	data.Text = r.FormValue("text")

	batch, err := s.analyzer.AnalyzeBatch(r.Context(), SessionFromContext(r.Context()), data.Text)
	if err != nil {
		data.Error = userMessage(err)
		s.render(w, r, statusFor(err), "batch", data)
		return
	}

	view := newBatchView(batch)
	data.Batch = &view
	s.render(w, r, http.StatusOK, "batch", data)
}

func (s *Server) historyPageHandler(w http.ResponseWriter, r *http.Request) {
	data := s.page("History", "history")

	records, err := s.analyzer.History(r.Context(), SessionFromContext(r.Context()), s.historyLimit)
	if err != nil {
		slog.Error("[HTTP] Failed to load history", slog.String("error", err.Error()))
		data.Error = userMessage(err)
		s.render(w, r, statusFor(err), "history", data)
		return
	}

	data.History = &HistoryView{Results: newResultViews(records), Summary: sentiment.Summarize(records)}
	s.render(w, r, http.StatusOK, "history", data)
}

func (s *Server) clearHistoryFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.analyzer.ClearHistory(r.Context(), SessionFromContext(r.Context())); err != nil {
		slog.Error("[HTTP] Failed to clear history", slog.String("error", err.Error()))
		http.Error(w, userMessage(err), statusFor(err))
		return
	}
	http.Redirect(w, r, "/history", http.StatusSeeOther)
}

func (s *Server) quizPageHandler(w http.ResponseWriter, r *http.Request) {
	data := s.page("Learning Zone Quiz", "quiz")
	data.Score = s.quiz.Score(SessionFromContext(r.Context()))

	question := s.quiz.Random()
	if id := r.URL.Query().Get("id"); id != "" {
		q, err := s.quiz.Question(id)
		if err != nil {
			data.Error = err.Error()
			s.render(w, r, http.StatusNotFound, "quiz", data)
			return
		}
		question = q
	}

	data.Question = &question
	s.render(w, r, http.StatusOK, "quiz", data)
}

func (s *Server) quizFormHandler(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	data := s.page("Learning Zone Quiz", "quiz")

	guess, ok := sentiment.Parse(r.FormValue("guess"))
	if !ok {
		question, err := s.quiz.Question(r.FormValue("id"))
		if err == nil {
			data.Question = &question
		}
		data.Error = "Pick positive, negative or neutral."
		data.Score = s.quiz.Score(session)
		s.render(w, r, http.StatusBadRequest, "quiz", data)
		return
	}

	answer, err := s.quiz.Grade(r.Context(), session, r.FormValue("id"), guess)
	if err != nil {
		data.Error = userMessage(err)
		data.Score = s.quiz.Score(session)
		next := s.quiz.Random()
		data.Question = &next
		s.render(w, r, statusFor(err), "quiz", data)
		return
	}

	next := s.quiz.Random()
	data.Answer = &answer
	data.Score = answer.Score
	data.Question = &next
	s.render(w, r, http.StatusOK, "quiz", data)
}

func (s *Server) learnPageHandler(w http.ResponseWriter, r *http.Request) {
	data := s.page("Learning Zone", "learn")
	data.Lessons = s.quiz.Lessons()
	s.render(w, r, http.StatusOK, "learn", data)
}
