package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

const defaultLanguage = "en"

// NewsRepo is the persistence the deduplicator needs.
type NewsRepo interface {
	GetByContentHash(ctx context.Context, hash string) (*domain.News, error)
	Create(ctx context.Context, n *domain.News) error
}

// Candidate is an article offered for ingestion.
type Candidate struct {
	SourceURL    string     `json:"sourceUrl" validate:"required,url"`
	CanonicalURL *string    `json:"canonicalUrl,omitempty" validate:"omitempty,url"`
	SourceName   *string    `json:"sourceName,omitempty"`
	Title        string     `json:"title" validate:"required"`
	Excerpt      *string    `json:"excerpt,omitempty"`
	ContentRaw   *string    `json:"contentRaw,omitempty"`
	ContentClean *string    `json:"contentClean,omitempty"` // defaults to ContentRaw
	Language     *string    `json:"language,omitempty" validate:"omitempty,max=10"`
	Market       *string    `json:"market,omitempty" validate:"omitempty,max=32"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

// Result is the outcome of Ingest. Created is false when the fingerprint already existed.
type Result struct {
	Created bool         `json:"created"`
	News    *domain.News `json:"news"`
}

// Service is the ingestion deduplicator.
type Service struct {
	repo   NewsRepo
	source string
	now    func() time.Time
}

// NewService returns a deduplicator over repo. source labels ingestion metrics (e.g. "api", "worker").
func NewService(repo NewsRepo, source string) *Service {
	return &Service{repo: repo, source: source, now: time.Now}
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// Ingest stores c unless an article with the same fingerprint exists.
// When a concurrent insert wins the race the stored article is returned with Created=false.
func (s *Service) Ingest(ctx context.Context, c Candidate) (Result, error) {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.SourceURL) == "" {
		return Result{}, apperr.Validation("title and sourceUrl are required", nil)
	}
	hash := Fingerprint(c.Title, c.ContentRaw)

	existing, err := s.repo.GetByContentHash(ctx, hash)
	if err != nil {
		s.record("error")
		return Result{}, fmt.Errorf("lookup by fingerprint: %w", err)
	}
	if existing != nil {
		s.record("duplicate")
		return Result{Created: false, News: existing}, nil
	}

	n := s.build(c, hash)
	if err := s.repo.Create(ctx, n); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			s.record("error")
			return Result{}, fmt.Errorf("insert news: %w", err)
		}
		winner, getErr := s.repo.GetByContentHash(ctx, hash)
		if getErr != nil {
			s.record("error")
			return Result{}, fmt.Errorf("re-fetch after conflict: %w", getErr)
		}
		if winner == nil {
			// Conflict on canonical URL with a different fingerprint.
			s.record("error")
			return Result{}, fmt.Errorf("insert news: %w", err)
		}
		s.record("duplicate")
		return Result{Created: false, News: winner}, nil
	}
	s.record("created")
	return Result{Created: true, News: n}, nil
}

func (s *Service) build(c Candidate, hash string) *domain.News {
	now := s.now().UTC()
	language := defaultLanguage
	if c.Language != nil && *c.Language != "" {
		language = *c.Language
	}
	clean := c.ContentClean
	if clean == nil {
		clean = c.ContentRaw
	}
	return &domain.News{
		ID:                uuid.New().String(),
		SourceURL:         c.SourceURL,
		CanonicalURL:      c.CanonicalURL,
		SourceName:        c.SourceName,
		Title:             c.Title,
		Excerpt:           c.Excerpt,
		ContentRaw:        c.ContentRaw,
		ContentClean:      clean,
		ContentHash:       hash,
		Language:          language,
		Market:            c.Market,
		PublishedAtSource: c.PublishedAt,
		ScrapedAt:         now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *Service) record(outcome string) {
	metrics.RecordIngest(s.source, outcome)
}
