package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

type memConfigRepo struct {
	configs []*domain.Config
}

func (m *memConfigRepo) CreateConfig(ctx context.Context, c *domain.Config) error {
	m.configs = append(m.configs, c)
	return nil
}

func (m *memConfigRepo) ListConfigs(ctx context.Context) ([]*domain.Config, error) {
	return m.configs, nil
}

func TestConfigService_Create(t *testing.T) {
	repo := &memConfigRepo{}
	svc := NewConfigService(repo)

	c, err := svc.Create(context.Background(), NewConfig{Name: " Wire ", SourceType: domain.SourceRSS, SourceURL: "https://wire.example.com/feed"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Wire", c.Name)
	assert.True(t, c.IsActive)
	assert.Equal(t, domain.DefaultCronSchedule, c.CronSchedule)

	inactive := false
	c2, err := svc.Create(context.Background(), NewConfig{Name: "Api", SourceType: domain.SourceAPI, SourceURL: "https://api.example.com", CronSchedule: "0 * * * *", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, c2.IsActive)
	assert.Equal(t, "0 * * * *", c2.CronSchedule)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
