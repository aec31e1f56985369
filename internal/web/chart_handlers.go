package web

import (
	"net/http"
	"strconv"

	"github.com/spacesedan/thaisenti/internal/charts"
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) gaugeChartHandler(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.ParseFloat(r.URL.Query().Get("score"), 64)
	if err != nil {
		http.Error(w, "score must be a number", http.StatusBadRequest)
		return
	}
	label := sentiment.Normalize(r.URL.Query().Get("label"))

	data, err := charts.Gauge(score, label)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePNG(w, data)
}

// pieChartHandler plots explicit pos/neg/neu counts when given, otherwise the session history.
func (s *Server) pieChartHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var summary models.Summary
	if query.Has("pos") || query.Has("neg") || query.Has("neu") {
		counts := make([]int, 3)
		for i, key := range []string{"pos", "neg", "neu"} {
			raw := query.Get(key)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, key+" must be a non-negative integer", http.StatusBadRequest)
				return
			}
			counts[i] = n
		}
		summary = models.Summary{
			Positive: counts[0],
			Negative: counts[1],
			Neutral:  counts[2],
			Total:    counts[0] + counts[1] + counts[2],
		}
	} else {
		records, err := s.analyzer.History(r.Context(), SessionFromContext(r.Context()), s.historyLimit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		summary = sentiment.Summarize(records)
	}

	data, err := charts.Pie(summary)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePNG(w, data)
}

func (s *Server) lineChartHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.analyzer.History(r.Context(), SessionFromContext(r.Context()), s.historyLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := charts.Line(sentiment.Timeline(records))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePNG(w, data)
}
