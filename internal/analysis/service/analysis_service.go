// Package service runs the heuristic analyzer and summarizer over stored articles.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/domain"
	newsdomain "github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

var ErrNewsNotFound = apperr.NotFound("News not found")

// Repo is the analysis repository used by the service.
type Repo interface {
	CreateDetail(ctx context.Context, d *domain.Detail) error
	CreateSummary(ctx context.Context, s *domain.Summary) error
	ListDetails(ctx context.Context, newsID string) ([]*domain.Detail, error)
	LatestSummary(ctx context.Context, newsID string) (*domain.Summary, error)
}

// NewsLookup loads the article being analyzed.
type NewsLookup interface {
	GetByID(ctx context.Context, id string) (*newsdomain.News, error)
}

// Result is one analysis pass over an article.
type Result struct {
	Detail  *domain.Detail  `json:"detail"`
	Summary *domain.Summary `json:"summary"`
}

// Overview is every stored analysis for an article.
type Overview struct {
	Details []*domain.Detail `json:"details"`
	Summary *domain.Summary  `json:"summary"`
}

type AnalysisService struct {
	repo Repo
	news NewsLookup
	now  func() time.Time
}

func NewAnalysisService(repo Repo, news NewsLookup) *AnalysisService {
	return &AnalysisService{repo: repo, news: news, now: func() time.Time { return time.Now().UTC() }}
}

// Analyze loads the article and stores a new recommendation and summary for it.
func (s *AnalysisService) Analyze(ctx context.Context, newsID string) (*Result, error) {
	n, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNewsNotFound
	}
	return s.AnalyzeArticle(ctx, n)
}

// AnalyzeArticle stores a recommendation and summary for an already loaded article.
func (s *AnalysisService) AnalyzeArticle(ctx context.Context, n *newsdomain.News) (*Result, error) {
	now := s.now()
	rec, confidence := Recommend(n)
	detail := &domain.Detail{
		ID:              uuid.New().String(),
		NewsID:          n.ID,
		Market:          n.Market,
		Recommendation:  rec,
		ConfidenceScore: confidence,
		Reasoning:       reasoning(rec),
		CreatedAt:       now,
	}
	if err := s.repo.CreateDetail(ctx, detail); err != nil {
		return nil, err
	}
	summary := &domain.Summary{
		ID:          uuid.New().String(),
		NewsID:      n.ID,
		SummaryText: Summarize(n),
		CreatedAt:   now,
	}
	if err := s.repo.CreateSummary(ctx, summary); err != nil {
		return nil, err
	}
	return &Result{Detail: detail, Summary: summary}, nil
}

// HasAnalysis reports whether the article has both a stored recommendation and a summary.
func (s *AnalysisService) HasAnalysis(ctx context.Context, newsID string) (bool, error) {
	details, err := s.repo.ListDetails(ctx, newsID)
	if err != nil || len(details) == 0 {
		return false, err
	}
	summary, err := s.repo.LatestSummary(ctx, newsID)
	if err != nil {
		return false, err
	}
	return summary != nil, nil
}

// Get returns the stored analyses for an article.
func (s *AnalysisService) Get(ctx context.Context, newsID string) (*Overview, error) {
	n, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNewsNotFound
	}
	details, err := s.repo.ListDetails(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []*domain.Detail{}
	}
	summary, err := s.repo.LatestSummary(ctx, newsID)
	if err != nil {
		return nil, err
	}
	return &Overview{Details: details, Summary: summary}, nil
}
