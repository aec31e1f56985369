//go:build hugot

package inference

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/models"
)

func init() {
	newHugotAnalyzer = func(settings config.Settings) (Analyzer, error) {
		return NewHugotAnalyzer(settings.ModelName, settings.HugotModelDir)
	}
}

// HugotAnalyzer runs the ONNX export of the model in-process.
type HugotAnalyzer struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	model    string
}

func NewHugotAnalyzer(modelName, modelDir string) (*HugotAnalyzer, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("[HugotAnalyzer] create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotAnalyzer] Model not found, downloading...",
			slog.String("model", modelName))
		modelPath, err = hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("[HugotAnalyzer] download %s: %w", modelName, err)
		}
		slog.Info("[HugotAnalyzer] Model downloaded successfully", slog.String("path", modelPath))
	} else {
		slog.Info("[HugotAnalyzer] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("[HugotAnalyzer] init session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "thaiSentimentPipeline",
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("[HugotAnalyzer] init pipeline: %w", err)
	}

	return &HugotAnalyzer{session: session, pipeline: pipeline, model: modelName}, nil
}

func (a *HugotAnalyzer) Name() string {
	return "hugot:" + a.model
}

func (a *HugotAnalyzer) Analyze(ctx context.Context, texts []string) ([]models.Prediction, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := a.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("hugot pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) != len(texts) {
		return nil, fmt.Errorf("hugot pipeline: expected %d outputs, got %d", len(texts), len(output.ClassificationOutputs))
	}

	predictions := make([]models.Prediction, 0, len(texts))
	for i, outputs := range output.ClassificationOutputs {
		scores := make([]models.LabelScore, 0, len(outputs))
		for _, o := range outputs {
			scores = append(scores, models.LabelScore{Label: o.Label, Score: float64(o.Score)})
		}
		best, ok := top(scores)
		if !ok {
			return nil, fmt.Errorf("hugot pipeline: no labels for input %d", i)
		}
		predictions = append(predictions, models.Prediction{Label: best.Label, Score: best.Score})
	}
	return predictions, nil
}

func (a *HugotAnalyzer) Healthy(context.Context) bool {
	return a.pipeline != nil
}

func (a *HugotAnalyzer) Close() error {
	if a.session == nil {
		return nil
	}
	return a.session.Destroy()
}
