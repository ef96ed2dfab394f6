package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	analysisservice "github.com/VictorSaf/ainvestfeed/internal/analysis/service"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	newsdomain "github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/telemetry/otel"
)

type ingester interface {
	Ingest(ctx context.Context, c ingestion.Candidate) (ingestion.Result, error)
}

type articleAnalyzer interface {
	AnalyzeArticle(ctx context.Context, n *newsdomain.News) (*analysisservice.Result, error)
	HasAnalysis(ctx context.Context, newsID string) (bool, error)
}

// candidateHandler ingests one candidate and analyzes it if it was new. A redelivered
// duplicate whose earlier analysis failed is analyzed again.
type candidateHandler struct {
	ingester ingester
	analyzer articleAnalyzer
	events   otel.EventEmitter
	logger   *slog.Logger
}

func (h *candidateHandler) handle(ctx context.Context, c ingestion.Candidate) error {
	res, err := h.ingester.Ingest(ctx, c)
	if err != nil {
		h.events.EmitIngest(ctx, otel.IngestEvent{SourceURL: c.SourceURL, Source: "worker", Outcome: "error", At: time.Now()})
		return fmt.Errorf("ingest: %w", err)
	}

	outcome := "duplicate"
	if res.Created {
		outcome = "created"
	}
	h.events.EmitIngest(ctx, otel.IngestEvent{NewsID: res.News.ID, SourceURL: c.SourceURL, Source: "worker", Outcome: outcome, At: time.Now()})
	if !res.Created {
		analyzed, err := h.analyzer.HasAnalysis(ctx, res.News.ID)
		if err != nil {
			return fmt.Errorf("analysis lookup %s: %w", res.News.ID, err)
		}
		if analyzed {
			h.logger.Debug("duplicate candidate", "news_id", res.News.ID, "source_url", c.SourceURL)
			return nil
		}
	}

	if _, err := h.analyzer.AnalyzeArticle(ctx, res.News); err != nil {
		metrics.RecordError("worker_analyze")
		return fmt.Errorf("analyze %s: %w", res.News.ID, err)
	}
	h.logger.Info("article ingested", "news_id", res.News.ID, "title", res.News.Title)
	return nil
}
