package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/analysis"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/inference"
	"github.com/spacesedan/thaisenti/internal/logging"
	"github.com/spacesedan/thaisenti/internal/sentiment"
)

type options struct {
	file    string
	backend string
	asJSON  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify Thai text as positive, negative or neutral",
		Long: `analyze runs the configured sentiment backend over each line of input.
Text comes from the arguments, from --file, or from stdin.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := os.Getenv("APP_ENV")
			if env == "" {
				env = "dev"
			}
			config.LoadEnv(env)
			settings := config.Load()
			slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), settings.LogLevel, "")))
			if opts.backend != "" {
				settings.Backend = opts.backend
			}

			input, err := readInput(cmd.InOrStdin(), opts.file, args)
			if err != nil {
				return err
			}
			return analyze(cmd.Context(), settings, input, opts.asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read one text per line from this file")
	cmd.Flags().StringVarP(&opts.backend, "backend", "b", "", "override SENTIMENT_BACKEND (huggingface, hugot, openai, vader)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print results as JSON lines")
	return cmd
}

func readInput(stdin io.Reader, file string, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	var r io.Reader = stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return "", fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return b.String(), nil
}

func analyze(ctx context.Context, settings config.Settings, input string, asJSON bool, out io.Writer) error {
	analyzer, err := inference.New(ctx, settings)
	if err != nil {
		return err
	}
	defer inference.Close(analyzer)

	service := analysis.NewService(analyzer, history.NewMemoryStore(0), nil, analysis.Config{
		MaxChars: settings.TextMaxChars,
		MaxLines: settings.BatchMaxLines,
	})

	batch, err := service.AnalyzeBatch(ctx, "cli", input)
	if err != nil {
		return err
	}
	return printBatch(out, batch, asJSON)
}

func printBatch(out io.Writer, batch analysis.BatchResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		for _, r := range batch.Results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range batch.Results {
		p := sentiment.Present(r.Sentiment, r.Score)
		fmt.Fprintf(out, "%s %-8s %s  %s\n", p.Emoji, r.Sentiment, p.Score, r.Text)
	}
	if batch.Summary.Total > 1 {
		fmt.Fprintf(out, "\n%d texts: %d positive, %d negative, %d neutral (avg %.2f)\n",
			batch.Summary.Total, batch.Summary.Positive, batch.Summary.Negative, batch.Summary.Neutral,
			batch.Summary.AverageScore)
	}
	return nil
}
