package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/indexer"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyList(cfg.KafkaBrokers, "KAFKA_BROKERS")
	config.MustNonEmpty(cfg.ESURL, "ES_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-indexer")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := es.NewClient(connectCtx, cfg, nil)
	cancel()
	if err != nil {
		log.Fatalf("es: %v", err)
	}

	index := es.NewProductIndex(client, cfg.ESIndex)
	if err := index.EnsureIndex(ctx); err != nil {
		log.Fatalf("es ensure index: %v", err)
	}

	reader := mykafka.NewReader(cfg.KafkaBrokers, cfg.KafkaGroupID, mykafka.TopicProducts)
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("kafka_reader_close_failed", "error", err)
		}
	}()

	ix := &indexer.Indexer{Reader: reader, Store: index}
	logger.Info("indexer_started", "topic", mykafka.TopicProducts, "index", cfg.ESIndex)
	if err := ix.Run(ctx); err != nil {
		logger.Error("indexer_failed", "error", err)
	}
	logger.Info("indexer_stopped")
}
