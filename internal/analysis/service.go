package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/inference"
	"github.com/spacesedan/thaisenti/internal/models"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

// Publisher ships finished results somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, results ...models.AnalysisResult) error
}

type Config struct {
	MaxChars int
	MaxLines int
}

type BatchResult struct {
	Results []models.AnalysisResult `json:"results"`
	Summary models.Summary          `json:"summary"`
}

type Service struct {
	analyzer  inference.Analyzer
	store     history.Store
	publisher Publisher
	cfg       Config
	now       func() time.Time
}

// NewService wires an analyzer to a history store. publisher may be nil.
func NewService(analyzer inference.Analyzer, store history.Store, publisher Publisher, cfg Config) *Service {
	return &Service{
		analyzer:  analyzer,
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) Backend() string {
	return s.analyzer.Name()
}

func (s *Service) AnalyzeText(ctx context.Context, session string, text string) (models.AnalysisResult, error) {
	text, err := sentiment.ValidateText(text, s.cfg.MaxChars)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	results, err := s.run(ctx, session, []string{text}, models.SourceSingle)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return results[0], nil
}

func (s *Service) AnalyzeBatch(ctx context.Context, session string, input string) (BatchResult, error) {
	lines, err := sentiment.SplitLines(input, s.cfg.MaxLines)
	if err != nil {
		return BatchResult{}, err
	}
	for i, line := range lines {
		if _, err := sentiment.ValidateText(line, s.cfg.MaxChars); err != nil {
			return BatchResult{}, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	results, err := s.run(ctx, session, lines, models.SourceBatch)
	if err != nil {
		return BatchResult{}, err
	}
	return BatchResult{Results: results, Summary: sentiment.Summarize(results)}, nil
}

// Predict runs the model without recording anything, e.g. for quiz grading.
func (s *Service) Predict(ctx context.Context, text string) (models.Prediction, error) {
	predictions, err := s.predict(ctx, []string{text})
	if err != nil {
		return models.Prediction{}, err
	}
	return predictions[0], nil
}

func (s *Service) History(ctx context.Context, session string, limit int) ([]models.AnalysisResult, error) {
	records, err := s.store.List(ctx, session, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", history.ErrUnavailable, err)
	}
	return records, nil
}

func (s *Service) ClearHistory(ctx context.Context, session string) error {
	if err := s.store.Clear(ctx, session); err != nil {
		return fmt.Errorf("%w: %w", history.ErrUnavailable, err)
	}
	return nil
}

func (s *Service) run(ctx context.Context, session string, texts []string, source string) ([]models.AnalysisResult, error) {
	start := time.Now()
	predictions, err := s.predict(ctx, texts)
	if err != nil {
		return nil, err
	}

	results := make([]models.AnalysisResult, 0, len(texts))
	for i, text := range texts {
		results = append(results, models.AnalysisResult{
			ID:        newID(),
			SessionID: session,
			Text:      text,
			RawLabel:  predictions[i].Label,
			Sentiment: sentiment.Normalize(predictions[i].Label),
			Score:     sentiment.ClampScore(predictions[i].Score),
			Source:    source,
			Backend:   s.analyzer.Name(),
			CreatedAt: s.now().UTC(),
		})
	}

	slog.Info("[AnalysisService] Analyzed texts",
		slog.String("session_id", session),
		slog.String("source", source),
		slog.Int("count", len(results)),
		slog.Duration("elapsed", time.Since(start)))

	// Recording is best effort; the user still sees the result.
	if err := s.store.Add(ctx, session, results...); err != nil {
		slog.Warn("[AnalysisService] Failed to record history",
			slog.String("session_id", session),
			slog.String("error", err.Error()))
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, results...); err != nil {
			slog.Warn("[AnalysisService] Failed to publish results",
				slog.String("error", err.Error()))
		}
	}

	return results, nil
}

func (s *Service) predict(ctx context.Context, texts []string) ([]models.Prediction, error) {
	cleaned := make([]string, len(texts))
	for i, text := range texts {
		cleaned[i] = sentiment.CleanText(text)
		if cleaned[i] == "" {
			cleaned[i] = text
		}
	}

	predictions, err := s.analyzer.Analyze(ctx, cleaned)
	if err != nil {
		slog.Error("[AnalysisService] Inference failed",
			slog.String("backend", s.analyzer.Name()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	if len(predictions) != len(texts) {
		return nil, fmt.Errorf("inference failed: expected %d predictions, got %d", len(texts), len(predictions))
	}
	return predictions, nil
}

// newID returns a time ordered UUID so stores can sort by id.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
