package repository

import (
	"context"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

// Repository defines persistence for scraping configs and runs.
type Repository interface {
	CreateConfig(ctx context.Context, c *domain.Config) error
	ListConfigs(ctx context.Context) ([]*domain.Config, error)
	ListActiveByType(ctx context.Context, sourceType string) ([]*domain.Config, error)
	StartRun(ctx context.Context, id, configID string, at time.Time) (*domain.Run, error)
	FinishRun(ctx context.Context, id string, at time.Time, status string, items int) (*domain.Run, error)
}
