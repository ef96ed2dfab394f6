package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/domain"
	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns an analysis repository that uses the given db for persistence.
func NewPostgresRepository(db gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

func (r *PostgresRepository) CreateDetail(ctx context.Context, d *domain.Detail) error {
	_, err := r.queries.CreateAnalysisDetail(ctx, gen.CreateAnalysisDetailParams{
		ID:               d.ID,
		NewsID:           d.NewsID,
		InstrumentSymbol: strPtrToNull(d.InstrumentSymbol),
		Market:           strPtrToNull(d.Market),
		Recommendation:   string(d.Recommendation),
		ConfidenceScore:  int32(d.ConfidenceScore),
		Reasoning:        d.Reasoning,
		CreatedAt:        d.CreatedAt,
	})
	return err
}

func (r *PostgresRepository) CreateSummary(ctx context.Context, s *domain.Summary) error {
	score := sql.NullFloat64{}
	if s.SentimentScore != nil {
		score = sql.NullFloat64{Float64: *s.SentimentScore, Valid: true}
	}
	_, err := r.queries.CreateAnalysisSummary(ctx, gen.CreateAnalysisSummaryParams{
		ID:             s.ID,
		NewsID:         s.NewsID,
		SummaryText:    s.SummaryText,
		SentimentScore: score,
		CreatedAt:      s.CreatedAt,
	})
	return err
}

// ListDetails returns the article's recommendations, newest first.
func (r *PostgresRepository) ListDetails(ctx context.Context, newsID string) ([]*domain.Detail, error) {
	rows, err := r.queries.ListAnalysisDetailsByNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Detail, len(rows))
	for i := range rows {
		out[i] = genDetailToDomain(&rows[i])
	}
	return out, nil
}

// LatestSummary returns the most recent summary for the article, or nil if none exists.
func (r *PostgresRepository) LatestSummary(ctx context.Context, newsID string) (*domain.Summary, error) {
	s, err := r.queries.GetLatestAnalysisSummary(ctx, newsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	out := &domain.Summary{ID: s.ID, NewsID: s.NewsID, SummaryText: s.SummaryText, CreatedAt: s.CreatedAt}
	if s.SentimentScore.Valid {
		v := s.SentimentScore.Float64
		out.SentimentScore = &v
	}
	return out, nil
}

func genDetailToDomain(d *gen.AnalysisDetail) *domain.Detail {
	return &domain.Detail{
		ID:               d.ID,
		NewsID:           d.NewsID,
		InstrumentSymbol: nullToStrPtr(d.InstrumentSymbol),
		Market:           nullToStrPtr(d.Market),
		Recommendation:   domain.Recommendation(d.Recommendation),
		ConfidenceScore:  int(d.ConfidenceScore),
		Reasoning:        d.Reasoning,
		CreatedAt:        d.CreatedAt,
	}
}

func strPtrToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}
