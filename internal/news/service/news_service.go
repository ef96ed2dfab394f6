// Package service serves news list, detail and search reads through the cache.
package service

import (
	"context"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/cache"
	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

const (
	DefaultPage        = 1
	DefaultLimit       = 20
	DefaultSearchLimit = 20
)

// ErrNewsNotFound is returned when no article has the requested id.
var ErrNewsNotFound = apperr.NotFound("News not found")

// Repo is the read side of the news repository.
type Repo interface {
	GetByID(ctx context.Context, id string) (*domain.News, error)
	List(ctx context.Context, f domain.ListFilter) ([]*domain.News, error)
	Count(ctx context.Context, f domain.ListFilter) (int64, error)
	Search(ctx context.Context, f domain.SearchFilter) ([]*domain.News, error)
}

// ListQuery is a validated GET /news query.
type ListQuery struct {
	Page          int
	Limit         int
	Market        *string
	ConfidenceMin *int
}

// SearchQuery is a validated GET /search query.
type SearchQuery struct {
	Q      string
	Limit  int
	Market *string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type ListResult struct {
	News       []*domain.News `json:"news"`
	Pagination Pagination     `json:"pagination"`
}

type SearchResult struct {
	Results      []*domain.News `json:"results"`
	TotalResults int            `json:"totalResults"`
	Query        string         `json:"query"`
}

// NewsService reads articles through a cache. Entries are never invalidated on
// write; staleness is bounded by the TTLs.
type NewsService struct {
	repo    Repo
	cache   cache.Cache
	listTTL time.Duration
	itemTTL time.Duration
}

// NewNewsService returns a service reading from repo through c. listTTL applies
// to list and search results, itemTTL to single articles.
func NewNewsService(repo Repo, c cache.Cache, listTTL, itemTTL time.Duration) *NewsService {
	return &NewsService{repo: repo, cache: c, listTTL: listTTL, itemTTL: itemTTL}
}

// List returns a page of articles, newest first.
func (s *NewsService) List(ctx context.Context, q ListQuery) (*ListResult, cache.Status, error) {
	q = normalizeList(q)
	res, status, err := cache.ReadThrough(ctx, s.cache, ListKey(q), s.listTTL, func(ctx context.Context) (*ListResult, error) {
		f := domain.ListFilter{
			Market:        q.Market,
			ConfidenceMin: q.ConfidenceMin,
			Limit:         q.Limit,
			Offset:        (q.Page - 1) * q.Limit,
		}
		items, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		total, err := s.repo.Count(ctx, f)
		if err != nil {
			return nil, err
		}
		return &ListResult{News: nonNil(items), Pagination: paginate(q.Page, q.Limit, total)}, nil
	})
	metrics.RecordCacheLookup(nsList, string(status))
	return res, status, err
}

// Get returns the article with id. A missing article is not cached.
func (s *NewsService) Get(ctx context.Context, id string) (*domain.News, cache.Status, error) {
	n, status, err := cache.ReadThrough(ctx, s.cache, ItemKey(id), s.itemTTL, func(ctx context.Context) (*domain.News, error) {
		n, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, ErrNewsNotFound
		}
		return n, nil
	})
	metrics.RecordCacheLookup(nsItem, string(status))
	return n, status, err
}

// Search returns articles whose title or clean content contains q.Q.
func (s *NewsService) Search(ctx context.Context, q SearchQuery) (*SearchResult, cache.Status, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	res, status, err := cache.ReadThrough(ctx, s.cache, SearchKey(q), s.listTTL, func(ctx context.Context) (*SearchResult, error) {
		items, err := s.repo.Search(ctx, domain.SearchFilter{Query: q.Q, Market: q.Market, Limit: q.Limit})
		if err != nil {
			return nil, err
		}
		return &SearchResult{Results: nonNil(items), TotalResults: len(items), Query: q.Q}, nil
	})
	metrics.RecordCacheLookup(nsSearch, string(status))
	return res, status, err
}

func normalizeList(q ListQuery) ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

func paginate(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func nonNil(items []*domain.News) []*domain.News {
	if items == nil {
		return []*domain.News{}
	}
	return items
}
