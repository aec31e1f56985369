package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/thaisenti/config"
	"github.com/spacesedan/thaisenti/internal/archive"
	"github.com/spacesedan/thaisenti/internal/clients/kafka_client"
	"github.com/spacesedan/thaisenti/internal/history"
	"github.com/spacesedan/thaisenti/internal/logging"
)

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

	cfg := kafka_client.KafkaConfig{
		Broker:  settings.KafkaBroker,
		Topic:   settings.KafkaTopic,
		GroupID: settings.KafkaGroupID,
	}
	if !cfg.Enabled() {
		slog.Error("[Main] KAFKA_BROKER is not set, nothing to archive")
		os.Exit(1)
	}

	store, closeStore, err := history.New(ctx, settings)
	if err != nil {
		slog.Error("[Main] Failed to open history store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var consumer *kafka.Consumer
	for {
		consumer, err = kafka_client.NewConsumer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer consumer.Close()

	archiver := archive.NewArchiver(
		kafka_client.NewMessageIterator(consumer),
		kafka_client.NewCommitHandler(consumer),
		store,
	)

	slog.Info("[Main] Archiving results",
		slog.String("topic", settings.KafkaTopic),
		slog.String("history", settings.HistoryBackend))
	if err := archiver.Run(ctx); err != nil {
		slog.Error("[Main] Archiver stopped", slog.String("error", err.Error()))
		consumer.Close()
		closeStore()
		os.Exit(1)
	}
}
