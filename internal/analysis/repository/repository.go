package repository

import (
	"context"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/domain"
)

// Repository defines persistence for analysis results.
type Repository interface {
	CreateDetail(ctx context.Context, d *domain.Detail) error
	CreateSummary(ctx context.Context, s *domain.Summary) error
	ListDetails(ctx context.Context, newsID string) ([]*domain.Detail, error)
	LatestSummary(ctx context.Context, newsID string) (*domain.Summary, error)
}
