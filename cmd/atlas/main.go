package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/band-atlas/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/band-atlas/internal/adapter/kafka"
	"github.com/couchcryptid/band-atlas/internal/config"
	"github.com/couchcryptid/band-atlas/internal/label"
	"github.com/couchcryptid/band-atlas/internal/observability"
	"github.com/couchcryptid/band-atlas/internal/store"
	"github.com/couchcryptid/band-atlas/internal/style"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	styles, err := style.Load(cfg.StyleFile)
	if err != nil {
		logger.Error("failed to load style config", "error", err)
		os.Exit(1)
	}

	st := store.New(logger)
	engine := label.New(label.Options{FontSize: cfg.LabelFontSize})
	labels := label.NewCache(engine, cfg.LabelCacheSize)

	// Marker publishing is feature-flagged via KAFKA_ENABLED.
	var publisher httpadapter.MarkerPublisher
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = kafkaWriter
		logger.Info("kafka marker sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka marker sink disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, st, styles, labels, publisher, metrics, logger, cfg.MaxUploadBytes)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.ServiceRunning.Set(1)
	defer metrics.ServiceRunning.Set(0)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
