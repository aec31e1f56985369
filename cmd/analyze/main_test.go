package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/analysis"
	"github.com/spacesedan/thaisenti/internal/models"
)

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("ignored"), "", []string{"สวัสดี", "ครับ"})
	require.NoError(t, err)
	assert.Equal(t, "สวัสดี ครับ", got)

	got, err = readInput(strings.NewReader("one\ntwo"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", got)

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))
	got, err = readInput(strings.NewReader(""), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", got)

	_, err = readInput(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestAnalyzeWithVader(t *testing.T) {
	settings := config.Settings{Backend: config.BACKEND_VADER, TextMaxChars: 100, BatchMaxLines: 5}

	var out bytes.Buffer
	require.NoError(t, analyze(context.Background(), settings, "I love this\nthis is terrible\n", false, &out))
	text := out.String()
	assert.Contains(t, text, "😊 positive")
	assert.Contains(t, text, "😞 negative")
	assert.Contains(t, text, "2 texts: 1 positive, 1 negative, 0 neutral")
}

func TestPrintBatchJSON(t *testing.T) {
	batch := analysis.BatchResult{
		Results: []models.AnalysisResult{{Text: "ดี", Sentiment: models.Positive, Score: 0.9}},
		Summary: models.Summary{Total: 1, Positive: 1},
	}

	var out bytes.Buffer
	require.NoError(t, printBatch(&out, batch, true))
	assert.Contains(t, out.String(), `"sentiment":"positive"`)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}
