package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

const (
	defaultConcurrency = 4
	fetchTimeout       = 30 * time.Second
	maxLanguageLen     = 10
)

// RunRepo is the persistence the poller needs.
type RunRepo interface {
	ListActiveByType(ctx context.Context, sourceType string) ([]*domain.Config, error)
	StartRun(ctx context.Context, id, configID string, at time.Time) (*domain.Run, error)
	FinishRun(ctx context.Context, id string, at time.Time, status string, items int) (*domain.Run, error)
}

// EmitFunc hands a candidate to the ingestion path (queue or direct).
type EmitFunc func(ctx context.Context, c ingestion.Candidate) error

// Summary is the outcome of one PollOnce.
type Summary struct {
	Configs int
	Items   int
	Failed  int
}

// Poller fetches active RSS configs and emits their items.
type Poller struct {
	repo        RunRepo
	emit        EmitFunc
	parser      *gofeed.Parser
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

// NewPoller returns a poller. client may be nil to use a client with a 30s timeout.
func NewPoller(repo RunRepo, emit EmitFunc, client *http.Client, logger *slog.Logger) *Poller {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	fp := gofeed.NewParser()
	fp.Client = client
	fp.UserAgent = "ainvestfeed-scraper/1.0"
	return &Poller{
		repo:        repo,
		emit:        emit,
		parser:      fp,
		logger:      logger,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// Run polls immediately and then every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("scrape cycle failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// PollOnce polls every active RSS config concurrently. A failing feed is recorded as a failed run
// and does not stop the others; only listing configs can make PollOnce return an error.
func (p *Poller) PollOnce(ctx context.Context) (Summary, error) {
	configs, err := p.repo.ListActiveByType(ctx, domain.SourceRSS)
	if err != nil {
		metrics.RecordError("scrape_list_configs")
		return Summary{}, fmt.Errorf("list active configs: %w", err)
	}

	var (
		mu  sync.Mutex
		sum = Summary{Configs: len(configs)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, cfg := range configs {
		g.Go(func() error {
			items, err := p.pollConfig(gctx, cfg)
			mu.Lock()
			defer mu.Unlock()
			sum.Items += items
			if err != nil {
				sum.Failed++
			}
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Info("scrape cycle finished", "configs", sum.Configs, "items", sum.Items, "failed", sum.Failed)
	return sum, nil
}

func (p *Poller) pollConfig(ctx context.Context, cfg *domain.Config) (int, error) {
	runID := uuid.New().String()
	if _, err := p.repo.StartRun(ctx, runID, cfg.ID, p.now().UTC()); err != nil {
		p.logger.Error("start scraping run", "config", cfg.Name, "error", err)
		metrics.RecordError("scrape_start_run")
		return 0, err
	}

	items, err := p.fetch(ctx, cfg)
	status := domain.RunSuccess
	if err != nil {
		status = domain.RunFailed
		p.logger.Warn("scrape failed", "config", cfg.Name, "url", cfg.SourceURL, "items", items, "error", err)
	}
	metrics.RecordScrape(cfg.Name, status, items)

	// Finish the run even if ctx was cancelled mid-fetch.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, ferr := p.repo.FinishRun(finishCtx, runID, p.now().UTC(), status, items); ferr != nil {
		p.logger.Error("finish scraping run", "config", cfg.Name, "run", runID, "error", ferr)
		metrics.RecordError("scrape_finish_run")
	}
	return items, err
}

// fetch parses the feed and emits every usable item. It returns the number of items emitted.
func (p *Poller) fetch(ctx context.Context, cfg *domain.Config) (int, error) {
	feed, err := p.parser.ParseURLWithContext(cfg.SourceURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("parse feed: %w", err)
	}

	var (
		emitted int
		errs    []error
	)
	for _, item := range feed.Items {
		c, ok := toCandidate(cfg, feed, item)
		if !ok {
			continue
		}
		if err := p.emit(ctx, c); err != nil {
			errs = append(errs, fmt.Errorf("emit %s: %w", c.SourceURL, err))
			continue
		}
		emitted++
	}
	return emitted, errors.Join(errs...)
}

// toCandidate maps a feed item. Items without a title or an absolute http(s) link are skipped.
func toCandidate(cfg *domain.Config, feed *gofeed.Feed, item *gofeed.Item) (ingestion.Candidate, bool) {
	if item == nil {
		return ingestion.Candidate{}, false
	}
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || !isHTTPURL(link) {
		return ingestion.Candidate{}, false
	}

	c := ingestion.Candidate{
		SourceURL:  link,
		SourceName: nonEmpty(cfg.Name),
		Title:      title,
		Excerpt:    nonEmpty(strings.TrimSpace(item.Description)),
	}
	if content := strings.TrimSpace(item.Content); content != "" {
		c.ContentRaw = &content
	} else {
		c.ContentRaw = c.Excerpt
	}
	if lang := strings.TrimSpace(feed.Language); lang != "" && len(lang) <= maxLanguageLen {
		c.Language = &lang
	}
	switch {
	case item.PublishedParsed != nil:
		t := item.PublishedParsed.UTC()
		c.PublishedAt = &t
	case item.UpdatedParsed != nil:
		t := item.UpdatedParsed.UTC()
		c.PublishedAt = &t
	}
	return c, true
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
