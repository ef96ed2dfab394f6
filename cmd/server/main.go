// Server runs the ainvestfeed HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	analysisrepo "github.com/VictorSaf/ainvestfeed/internal/analysis/repository"
	analysisservice "github.com/VictorSaf/ainvestfeed/internal/analysis/service"
	bookmarkrepo "github.com/VictorSaf/ainvestfeed/internal/bookmark/repository"
	bookmarkservice "github.com/VictorSaf/ainvestfeed/internal/bookmark/service"
	"github.com/VictorSaf/ainvestfeed/internal/cache"
	"github.com/VictorSaf/ainvestfeed/internal/config"
	"github.com/VictorSaf/ainvestfeed/internal/db"
	devicerepo "github.com/VictorSaf/ainvestfeed/internal/device/repository"
	deviceservice "github.com/VictorSaf/ainvestfeed/internal/device/service"
	healthhandler "github.com/VictorSaf/ainvestfeed/internal/health/handler"
	identityservice "github.com/VictorSaf/ainvestfeed/internal/identity/service"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/logger"
	newsrepo "github.com/VictorSaf/ainvestfeed/internal/news/repository"
	newsservice "github.com/VictorSaf/ainvestfeed/internal/news/service"
	"github.com/VictorSaf/ainvestfeed/internal/policy/engine"
	"github.com/VictorSaf/ainvestfeed/internal/scraper"
	scraperrepo "github.com/VictorSaf/ainvestfeed/internal/scraper/repository"
	"github.com/VictorSaf/ainvestfeed/internal/security"
	"github.com/VictorSaf/ainvestfeed/internal/server"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
	sessionrepo "github.com/VictorSaf/ainvestfeed/internal/session/repository"
	"github.com/VictorSaf/ainvestfeed/internal/telemetry/otel"
	userrepo "github.com/VictorSaf/ainvestfeed/internal/user/repository"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := otel.NewProviders(ctx, otel.Options{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceName:    healthhandler.ServiceName,
		ServiceVersion: healthhandler.Version,
		Environment:    cfg.Env,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()
	defer shutdown(providers)

	logs := logger.New(os.Stdout, cfg.LogLevel, healthhandler.ServiceName, providers.LoggerProvider)
	slog.SetDefault(logs)

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer conn.Close()

	readCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cache %s: %w", cfg.CacheBackend, err)
	}
	defer closeCache()

	policy, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	tokens := security.NewTokenProvider(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL(), cfg.RefreshTTL())
	users := userrepo.NewPostgresRepository(conn)
	news := newsrepo.NewPostgresRepository(conn)

	deps := server.Deps{
		Logger:         logs,
		ServiceName:    healthhandler.ServiceName,
		Tokens:         tokens,
		Policy:         policy,
		RateLimiter:    middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		AllowedOrigins: cfg.AllowedOriginsList(),

		Auth:            identityservice.NewAuthService(users, sessionrepo.NewPostgresRepository(conn), security.NewHasher(cfg.BcryptCost), tokens, cfg.SessionTTL()),
		News:            newsservice.NewNewsService(news, readCache, cfg.CacheListTTL(), cfg.CacheItemTTL()),
		Bookmarks:       bookmarkservice.NewBookmarkService(bookmarkrepo.NewPostgresRepository(conn), news),
		Devices:         deviceservice.NewDeviceService(devicerepo.NewPostgresRepository(conn)),
		Profiles:        users,
		Analysis:        analysisservice.NewAnalysisService(analysisrepo.NewPostgresRepository(conn), news),
		Ingester:        ingestion.NewService(news, "api"),
		ScrapingConfigs: scraper.NewConfigService(scraperrepo.NewPostgresRepository(conn)),

		HealthDB:     conn,
		HealthPolicy: policy,
		Metrics:      true,
	}
	if !cfg.IsProduction() {
		deps.Seed = news
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logs.Info("HTTP server listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "cache", cfg.CacheBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	logs.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logs.Info("HTTP server stopped")
	return nil
}

// newCache returns the configured read cache and a func that releases it.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.CacheBackend != "redis" {
		return cache.NewMemory(), func() {}, nil
	}
	rc, err := cache.NewRedisFromURL(cfg.RedisURL, "ainvestfeed:")
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, nil, err
	}
	return rc, func() {
		if err := rc.Close(); err != nil {
			slog.Warn("redis close", "error", err)
		}
	}, nil
}

func shutdown(p *otel.Providers) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		log.Printf("telemetry shutdown: %v", err)
	}
}
