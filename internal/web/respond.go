package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spacesedan/thaisenti/internal/charts"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/quiz"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes; anything unknown is a backend failure.
func statusFor(err error) int {
	switch {
	case sentiment.IsInputError(err), errors.Is(err, quiz.ErrInvalidGuess):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrUnknownQuestion), errors.Is(err, charts.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, history.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// userMessage hides backend details from the browser.
func userMessage(err error) string {
	switch statusFor(err) {
	case http.StatusBadGateway:
		return "The sentiment model is not available right now, please try again."
	case http.StatusServiceUnavailable:
		return "History is not available right now, please try again."
	default:
		return err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[HTTP] Failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("[HTTP] Request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorResponse{Error: userMessage(err)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
