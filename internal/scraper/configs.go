// Package scraper polls configured feeds and turns their items into ingestion candidates.
package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

// ConfigRepo is the persistence ConfigService needs.
type ConfigRepo interface {
	CreateConfig(ctx context.Context, c *domain.Config) error
	ListConfigs(ctx context.Context) ([]*domain.Config, error)
}

// NewConfig is the input to ConfigService.Create.
type NewConfig struct {
	Name         string
	SourceType   string
	SourceURL    string
	CronSchedule string
	IsActive     *bool
}

// ConfigService manages scraping configs for admins.
type ConfigService struct {
	repo ConfigRepo
}

func NewConfigService(repo ConfigRepo) *ConfigService {
	return &ConfigService{repo: repo}
}

// Create stores a config. Configs are active and run on DefaultCronSchedule unless told otherwise.
func (s *ConfigService) Create(ctx context.Context, in NewConfig) (*domain.Config, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	schedule := strings.TrimSpace(in.CronSchedule)
	if schedule == "" {
		schedule = domain.DefaultCronSchedule
	}
	now := time.Now().UTC()
	c := &domain.Config{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		SourceType:   in.SourceType,
		SourceURL:    strings.TrimSpace(in.SourceURL),
		CronSchedule: schedule,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateConfig(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConfigService) List(ctx context.Context) ([]*domain.Config, error) {
	return s.repo.ListConfigs(ctx)
}
