package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a news repository that uses the given db for persistence.
func NewPostgresRepository(conn gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(conn)}
}

// GetByID returns the article for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.News, error) {
	n, err := r.queries.GetNews(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genNewsToDomain(&n), nil
}

// GetByContentHash returns the article with the given fingerprint, or nil if not found.
func (r *PostgresRepository) GetByContentHash(ctx context.Context, hash string) (*domain.News, error) {
	n, err := r.queries.GetNewsByContentHash(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genNewsToDomain(&n), nil
}

// Create persists the article. The article must have ID, ContentHash and ScrapedAt set.
// CreatedAt and UpdatedAt are filled from the stored row.
func (r *PostgresRepository) Create(ctx context.Context, n *domain.News) error {
	row, err := r.queries.CreateNews(ctx, gen.CreateNewsParams{
		ID:                n.ID,
		SourceUrl:         n.SourceURL,
		CanonicalUrl:      strPtrToNull(n.CanonicalURL),
		SourceName:        strPtrToNull(n.SourceName),
		Title:             n.Title,
		Excerpt:           strPtrToNull(n.Excerpt),
		ContentRaw:        strPtrToNull(n.ContentRaw),
		ContentClean:      strPtrToNull(n.ContentClean),
		ContentHash:       n.ContentHash,
		Language:          sql.NullString{String: n.Language, Valid: n.Language != ""},
		Market:            strPtrToNull(n.Market),
		PublishedAtSource: timePtrToNull(n.PublishedAtSource),
		ScrapedAt:         n.ScrapedAt,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	n.CreatedAt = row.CreatedAt
	n.UpdatedAt = row.UpdatedAt
	return nil
}

// List returns a page of articles, newest publication first.
func (r *PostgresRepository) List(ctx context.Context, f domain.ListFilter) ([]*domain.News, error) {
	list, err := r.queries.ListNews(ctx, gen.ListNewsParams{
		Market:        strPtrToNull(f.Market),
		ConfidenceMin: intPtrToNull(f.ConfidenceMin),
		Limit:         int32(f.Limit),
		Offset:        int32(f.Offset),
	})
	if err != nil {
		return nil, err
	}
	return genNewsListToDomain(list), nil
}

// Count returns the number of articles matching the filter. Limit and Offset are ignored.
func (r *PostgresRepository) Count(ctx context.Context, f domain.ListFilter) (int64, error) {
	return r.queries.CountNews(ctx, gen.CountNewsParams{
		Market:        strPtrToNull(f.Market),
		ConfidenceMin: intPtrToNull(f.ConfidenceMin),
	})
}

// Search matches the query as a literal substring of title or clean content, case-insensitively.
func (r *PostgresRepository) Search(ctx context.Context, f domain.SearchFilter) ([]*domain.News, error) {
	list, err := r.queries.SearchNews(ctx, gen.SearchNewsParams{
		Pattern: "%" + escapeLike(f.Query) + "%",
		Market:  strPtrToNull(f.Market),
		Limit:   int32(f.Limit),
	})
	if err != nil {
		return nil, err
	}
	return genNewsListToDomain(list), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func genNewsListToDomain(list []gen.News) []*domain.News {
	out := make([]*domain.News, len(list))
	for i := range list {
		out[i] = genNewsToDomain(&list[i])
	}
	return out
}

func genNewsToDomain(n *gen.News) *domain.News {
	if n == nil {
		return nil
	}
	language := "en"
	if n.Language.Valid {
		language = n.Language.String
	}
	return &domain.News{
		ID:                n.ID,
		SourceURL:         n.SourceUrl,
		CanonicalURL:      nullToStrPtr(n.CanonicalUrl),
		SourceName:        nullToStrPtr(n.SourceName),
		Title:             n.Title,
		Excerpt:           nullToStrPtr(n.Excerpt),
		ContentRaw:        nullToStrPtr(n.ContentRaw),
		ContentClean:      nullToStrPtr(n.ContentClean),
		ContentHash:       n.ContentHash,
		Language:          language,
		Market:            nullToStrPtr(n.Market),
		PublishedAtSource: nullToTimePtr(n.PublishedAtSource),
		ScrapedAt:         n.ScrapedAt,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
}
