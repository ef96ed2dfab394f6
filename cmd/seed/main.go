// Seed inserts development sample data: one user per role, a handful of articles and an
// example RSS scraping config. Idempotent: skips if the admin user already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/config"
	"github.com/VictorSaf/ainvestfeed/internal/db"
	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	newsrepo "github.com/VictorSaf/ainvestfeed/internal/news/repository"
	"github.com/VictorSaf/ainvestfeed/internal/scraper"
	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
	scraperrepo "github.com/VictorSaf/ainvestfeed/internal/scraper/repository"
	"github.com/VictorSaf/ainvestfeed/internal/security"
	userdomain "github.com/VictorSaf/ainvestfeed/internal/user/domain"
	userrepo "github.com/VictorSaf/ainvestfeed/internal/user/repository"
)

const devPassword = "Password123!"

var devUsers = []struct {
	email string
	role  userdomain.Role
	first string
}{
	{"admin@example.com", userdomain.RoleAdmin, "Ada"},
	{"power@example.com", userdomain.RolePower, "Pat"},
	{"user@example.com", userdomain.RoleUser, "Uma"},
}

var devArticles = []struct {
	title, url, market, body string
}{
	{"Acme beats Q3 earnings estimates", "https://news.example.com/acme-q3", "stocks", "Acme posted record revenue and raised guidance."},
	{"Bitcoin falls below key support", "https://news.example.com/btc-support", "crypto", "Prices slid as volumes thinned across major exchanges."},
	{"Euro steady ahead of ECB decision", "https://news.example.com/eur-ecb", "forex", "Traders await the rate decision on Thursday."},
	{"Globex shares down after guidance miss", "https://news.example.com/globex-miss", "stocks", "Management cut full-year targets."},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	existing, err := users.GetByEmail(ctx, devUsers[0].email)
	if err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if existing != nil {
		log.Printf("Seed already applied (%s exists). Skipping.", devUsers[0].email)
		return nil
	}

	hash, err := security.NewHasher(cfg.BcryptCost).Hash(devPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	for _, du := range devUsers {
		first := du.first
		u := &userdomain.User{
			ID:           uuid.New().String(),
			Email:        du.email,
			PasswordHash: hash,
			Role:         du.role,
			IsActive:     true,
			FirstName:    &first,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.Validate(); err != nil {
			return fmt.Errorf("user %s: %w", du.email, err)
		}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", du.email, err)
		}
	}

	ingester := ingestion.NewService(newsrepo.NewPostgresRepository(conn), "seed")
	for i, a := range devArticles {
		market, body := a.market, a.body
		published := now.Add(-time.Duration(i) * time.Hour)
		if _, err := ingester.Ingest(ctx, ingestion.Candidate{
			SourceURL:   a.url,
			Title:       a.title,
			Excerpt:     &body,
			ContentRaw:  &body,
			Market:      &market,
			PublishedAt: &published,
		}); err != nil {
			return fmt.Errorf("ingest %q: %w", a.title, err)
		}
	}

	inactive := false
	if _, err := scraper.NewConfigService(scraperrepo.NewPostgresRepository(conn)).Create(ctx, scraper.NewConfig{
		Name:       "Example market wire",
		SourceType: domain.SourceRSS,
		SourceURL:  "https://news.example.com/rss.xml",
		IsActive:   &inactive,
	}); err != nil {
		return fmt.Errorf("create scraping config: %w", err)
	}

	log.Println("Seed completed successfully.")
	for _, du := range devUsers {
		fmt.Printf("%s login: %s / %s\n", du.role, du.email, devPassword)
	}
	return nil
}
