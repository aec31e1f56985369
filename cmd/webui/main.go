package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/analysis"
	"github.com/spacesedan/thaisenti/internal/clients/kafka_client"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/inference"
	"github.com/spacesedan/thaisenti/internal/logging"
	"github.com/spacesedan/thaisenti/internal/monitoring"
	"github.com/spacesedan/thaisenti/internal/quiz"
	"github.com/spacesedan/thaisenti/internal/web"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	settings := config.Load()
	logging.InitLogger(settings.LogLevel, settings.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings); err != nil {
		slog.Error("[Main] Web UI stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, settings config.Settings) error {
	analyzer, err := inference.New(ctx, settings)
	if err != nil {
		return err
	}
	defer inference.Close(analyzer)

	store, closeStore, err := history.New(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStore()

	var publisher analysis.Publisher
	kafkaCfg := kafka_client.KafkaConfig{Broker: settings.KafkaBroker, Topic: settings.KafkaTopic}
	if kafkaCfg.Enabled() {
		p, err := kafka_client.NewPublisher(kafkaCfg)
		if err != nil {
			return err
		}
		defer p.Close()
		go p.Run(ctx)
		publisher = p
	}

	service := analysis.NewService(analyzer, store, publisher, analysis.Config{
		MaxChars: settings.TextMaxChars,
		MaxLines: settings.BatchMaxLines,
	})

	q, err := quiz.New(service)
	if err != nil {
		return err
	}

	health := &monitoring.AnalyzerHealth{}
	go monitoring.MonitorAnalyzerHealth(ctx, analyzer, settings.HealthcheckTick, health)

	srv, err := web.NewServer(web.Options{
		Analyzer:     service,
		Quiz:         q,
		Health:       health,
		HistoryLimit: settings.HistoryLimit,
		MaxChars:     settings.TextMaxChars,
		MaxLines:     settings.BatchMaxLines,
		SecureCookie: settings.IsProduction(),
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] Web UI listening",
			slog.String("addr", settings.HTTPAddr),
			slog.String("env", settings.Env),
			slog.String("backend", analyzer.Name()),
			slog.String("history", settings.HistoryBackend))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("[Main] Shutting down web UI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
