package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spacesedan/thaisenti/internal/analysis"
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/monitoring"
	"github.com/spacesedan/thaisenti/internal/quiz"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

//go:embed templates/*.html
var templateFS embed.FS

const MAX_BODY_BYTES = 1 << 20

// Analyzer is the part of analysis.Service the handlers use.
type Analyzer interface {
	Backend() string
	AnalyzeText(ctx context.Context, session string, text string) (models.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, session string, input string) (analysis.BatchResult, error)
	History(ctx context.Context, session string, limit int) ([]models.AnalysisResult, error)
	ClearHistory(ctx context.Context, session string) error
}

type Options struct {
	Analyzer     Analyzer
	Quiz         *quiz.Quiz
	Health       *monitoring.AnalyzerHealth
	HistoryLimit int
	MaxChars     int
	MaxLines     int
	SecureCookie bool
}

type Server struct {
	analyzer     Analyzer
	quiz         *quiz.Quiz
	health       *monitoring.AnalyzerHealth
	pages        map[string]*template.Template
	historyLimit int
	maxChars     int
	maxLines     int
	secureCookie bool
}

func NewServer(opts Options) (*Server, error) {
	if opts.Analyzer == nil || opts.Quiz == nil {
		return nil, fmt.Errorf("web server needs an analyzer and a quiz")
	}
	if opts.Health == nil {
		opts.Health = &monitoring.AnalyzerHealth{}
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		analyzer:     opts.Analyzer,
		quiz:         opts.Quiz,
		health:       opts.Health,
		pages:        pages,
		historyLimit: opts.HistoryLimit,
		maxChars:     opts.MaxChars,
		maxLines:     opts.MaxLines,
		secureCookie: opts.SecureCookie,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthzHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.sessions)

		r.Get("/", s.indexHandler)
		r.Post("/analyze", s.analyzeFormHandler)
		r.Get("/batch", s.batchPageHandler)
		r.Post("/batch", s.batchFormHandler)
		r.Get("/history", s.historyPageHandler)
		r.Post("/history/clear", s.clearHistoryFormHandler)
		r.Get("/quiz", s.quizPageHandler)
		r.Post("/quiz", s.quizFormHandler)
		r.Get("/learn", s.learnPageHandler)

		r.Route("/api", func(r chi.Router) {
			r.Post("/analyze", s.analyzeAPIHandler)
			r.Post("/analyze/batch", s.batchAPIHandler)
			r.Get("/history", s.historyAPIHandler)
			r.Delete("/history", s.clearHistoryAPIHandler)
			r.Get("/quiz", s.quizQuestionAPIHandler)
			r.Post("/quiz/{id}", s.quizAnswerAPIHandler)
		})

		r.Route("/charts", func(r chi.Router) {
			r.Get("/gauge.png", s.gaugeChartHandler)
			r.Get("/pie.png", s.pieChartHandler)
			r.Get("/line.png", s.lineChartHandler)
		})
	})

	return r
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"present": func(s models.Sentiment, score float64) models.Presentation {
			return sentiment.Present(s, score)
		},
		"emoji": sentiment.Emoji,
		"color": sentiment.Color,
		"short": sentiment.ShortLabel,
		"clock": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04:05")
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"sentiments": func() []models.Sentiment {
			return models.Sentiments
		},
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"index", "batch", "history", "quiz", "learn"} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}
