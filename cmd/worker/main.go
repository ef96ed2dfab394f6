// Worker consumes scraped candidates from Kafka, deduplicates them into the news table and
// runs the analyzer and summarizer on every newly created article.
// Requires KAFKA_BROKERS and DATABASE_URL; INGEST_KAFKA_TOPIC and KAFKA_GROUP_ID have defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	analysisrepo "github.com/VictorSaf/ainvestfeed/internal/analysis/repository"
	analysisservice "github.com/VictorSaf/ainvestfeed/internal/analysis/service"
	"github.com/VictorSaf/ainvestfeed/internal/config"
	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/logger"
	newsrepo "github.com/VictorSaf/ainvestfeed/internal/news/repository"
	"github.com/VictorSaf/ainvestfeed/internal/queue"
	"github.com/VictorSaf/ainvestfeed/internal/telemetry/otel"
)

const serviceName = "ainvestfeed-worker"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	brokers := cfg.KafkaBrokersList()
	if len(brokers) == 0 {
		return errors.New("worker: KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, otel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: serviceName,
		Environment: cfg.Env,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	logs := logger.New(os.Stdout, cfg.LogLevel, serviceName, providers.LoggerProvider)
	slog.SetDefault(logs)

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer conn.Close()

	consumer, err := queue.NewConsumer(brokers, cfg.IngestKafkaTopic, cfg.KafkaGroupID, logs)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}
	defer consumer.Close()

	news := newsrepo.NewPostgresRepository(conn)
	h := &candidateHandler{
		ingester: ingestion.NewService(news, "worker"),
		analyzer: analysisservice.NewAnalysisService(analysisrepo.NewPostgresRepository(conn), news),
		events:   otel.NewEventEmitter(providers.LoggerProvider),
		logger:   logs,
	}

	logs.Info("worker started", "topic", cfg.IngestKafkaTopic, "group", cfg.KafkaGroupID, "brokers", brokers)
	if err := consumer.Run(ctx, h.handle); err != nil {
		return fmt.Errorf("consumer stopped: %w", err)
	}
	logs.Info("worker stopped")
	return nil
}
