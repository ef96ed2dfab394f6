package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/VictorSaf/ainvestfeed/internal/db/sqlc/gen"
	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

type PostgresRepository struct {
	queries *gen.Queries
}

// NewPostgresRepository returns a scraping repository backed by db.
func NewPostgresRepository(db gen.DBTX) *PostgresRepository {
	return &PostgresRepository{queries: gen.New(db)}
}

// CreateConfig persists c. ID and CreatedAt must be set; UpdatedAt is filled from the stored row.
func (r *PostgresRepository) CreateConfig(ctx context.Context, c *domain.Config) error {
	row, err := r.queries.CreateScrapingConfig(ctx, gen.CreateScrapingConfigParams{
		ID:           c.ID,
		Name:         c.Name,
		SourceType:   c.SourceType,
		SourceUrl:    c.SourceURL,
		CronSchedule: c.CronSchedule,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	})
	if err != nil {
		return err
	}
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *PostgresRepository) ListConfigs(ctx context.Context) ([]*domain.Config, error) {
	list, err := r.queries.ListScrapingConfigs(ctx)
	if err != nil {
		return nil, err
	}
	return genConfigsToDomain(list), nil
}

// ListActiveByType returns active configs of sourceType, oldest first.
func (r *PostgresRepository) ListActiveByType(ctx context.Context, sourceType string) ([]*domain.Config, error) {
	list, err := r.queries.ListActiveScrapingConfigsByType(ctx, sourceType)
	if err != nil {
		return nil, err
	}
	return genConfigsToDomain(list), nil
}

// StartRun inserts a run in the running state.
func (r *PostgresRepository) StartRun(ctx context.Context, id, configID string, at time.Time) (*domain.Run, error) {
	row, err := r.queries.CreateScrapingRun(ctx, gen.CreateScrapingRunParams{ID: id, ConfigID: configID, StartedAt: at})
	if err != nil {
		return nil, err
	}
	return genRunToDomain(&row), nil
}

// FinishRun closes the run with status and item count. Returns nil, nil if the run does not exist.
func (r *PostgresRepository) FinishRun(ctx context.Context, id string, at time.Time, status string, items int) (*domain.Run, error) {
	row, err := r.queries.FinishScrapingRun(ctx, gen.FinishScrapingRunParams{
		ID:         id,
		FinishedAt: sql.NullTime{Time: at, Valid: true},
		Status:     status,
		ItemsFound: int32(items),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return genRunToDomain(&row), nil
}

func genConfigsToDomain(list []gen.ScrapingConfig) []*domain.Config {
	out := make([]*domain.Config, len(list))
	for i := range list {
		c := &list[i]
		out[i] = &domain.Config{
			ID:           c.ID,
			Name:         c.Name,
			SourceType:   c.SourceType,
			SourceURL:    c.SourceUrl,
			CronSchedule: c.CronSchedule,
			IsActive:     c.IsActive,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
		}
	}
	return out
}

func genRunToDomain(r *gen.ScrapingRun) *domain.Run {
	run := &domain.Run{
		ID:         r.ID,
		ConfigID:   r.ConfigID,
		StartedAt:  r.StartedAt,
		Status:     r.Status,
		ItemsFound: int(r.ItemsFound),
	}
	if r.FinishedAt.Valid {
		t := r.FinishedAt.Time
		run.FinishedAt = &t
	}
	return run
}
