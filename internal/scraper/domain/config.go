package domain

import "time"

// Source types accepted by scraping_configs.source_type.
const (
	SourceRSS     = "rss"
	SourceAPI     = "api"
	SourceScraper = "scraper"
)

// Run statuses.
const (
	RunRunning = "running"
	RunSuccess = "success"
	RunFailed  = "failed"
)

// DefaultCronSchedule is stored when a config is created without a schedule.
const DefaultCronSchedule = "*/5 * * * *"

// Config is a feed or endpoint the scraper polls.
type Config struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SourceType   string    `json:"sourceType"`
	SourceURL    string    `json:"sourceUrl"`
	CronSchedule string    `json:"cronSchedule"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Run records one poll of a Config.
type Run struct {
	ID         string
	ConfigID   string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
	ItemsFound int
}
