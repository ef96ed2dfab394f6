// Scraper polls active RSS scraping configs every SCRAPE_INTERVAL. Items are published to
// INGEST_KAFKA_TOPIC when KAFKA_BROKERS is set, otherwise ingested directly into the database.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/config"
	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/logger"
	newsrepo "github.com/VictorSaf/ainvestfeed/internal/news/repository"
	"github.com/VictorSaf/ainvestfeed/internal/queue"
	"github.com/VictorSaf/ainvestfeed/internal/scraper"
	scraperrepo "github.com/VictorSaf/ainvestfeed/internal/scraper/repository"
	"github.com/VictorSaf/ainvestfeed/internal/telemetry/otel"
)

const serviceName = "ainvestfeed-scraper"

func main() {
	once := flag.Bool("once", false, "Poll every active config once and exit")
	flag.Parse()

	if err := run(*once); err != nil {
		log.Fatal(err)
	}
}

func run(once bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
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

	emit, closeEmit, err := newEmitter(cfg, conn, logs)
	if err != nil {
		return fmt.Errorf("emitter: %w", err)
	}
	defer closeEmit()

	poller := scraper.NewPoller(scraperrepo.NewPostgresRepository(conn), emit, nil, logs)
	if once {
		if _, err := poller.PollOnce(ctx); err != nil {
			return fmt.Errorf("scrape: %w", err)
		}
		return nil
	}

	logs.Info("scraper started", "interval", cfg.ScrapeInterval().String())
	_ = poller.Run(ctx, cfg.ScrapeInterval())
	logs.Info("scraper stopped")
	return nil
}

// newEmitter publishes to Kafka when brokers are configured and falls back to in-process ingestion.
func newEmitter(cfg *config.Config, conn *sql.DB, logs *slog.Logger) (scraper.EmitFunc, func(), error) {
	if brokers := cfg.KafkaBrokersList(); len(brokers) > 0 {
		pub, err := queue.NewKafkaPublisher(brokers, cfg.IngestKafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		logs.Info("publishing candidates to kafka", "topic", cfg.IngestKafkaTopic)
		return pub.Publish, func() { _ = pub.Close() }, nil
	}

	logs.Info("KAFKA_BROKERS not set; ingesting candidates directly")
	svc := ingestion.NewService(newsrepo.NewPostgresRepository(conn), "scraper")
	emit := func(ctx context.Context, c ingestion.Candidate) error {
		_, err := svc.Ingest(ctx, c)
		return err
	}
	return emit, func() {}, nil
}
