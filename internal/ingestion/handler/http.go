// Package handler exposes admin ingestion and the development seed endpoint.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

// Ingester is the subset of *ingestion.Service used by the handler.
type Ingester interface {
	Ingest(ctx context.Context, c ingestion.Candidate) (ingestion.Result, error)
}

// NewsCreator inserts a row without deduplication. Used only by the seed endpoint.
type NewsCreator interface {
	Create(ctx context.Context, n *domain.News) error
}

type IngestHandler struct {
	ingester Ingester
}

func NewIngestHandler(ingester Ingester) *IngestHandler {
	return &IngestHandler{ingester: ingester}
}

// Register mounts POST /admin/news on g. g must enforce the ingest permission.
func (h *IngestHandler) Register(g *echo.Group) {
	g.POST("/news", h.ingest)
}

func (h *IngestHandler) ingest(c echo.Context) error {
	var req ingestion.Candidate
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.ingester.Ingest(c.Request().Context(), req)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return httpx.OK(c, status, res)
}

// SeedHandler inserts synthetic articles for local development and end-to-end tests.
type SeedHandler struct {
	repo NewsCreator
	now  func() time.Time
}

func NewSeedHandler(repo NewsCreator) *SeedHandler {
	return &SeedHandler{repo: repo, now: time.Now}
}

// Register mounts POST /__seed/news on e. Callers must not mount it in production.
func (h *SeedHandler) Register(e *echo.Echo) {
	e.POST("/__seed/news", h.seed)
}

type seedRequest struct {
	Title  string  `json:"title" validate:"required,min=1,max=500"`
	Market *string `json:"market" validate:"omitempty,max=32"`
}

func (h *SeedHandler) seed(c echo.Context) error {
	var req seedRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	now := h.now().UTC()
	market := "stocks"
	if req.Market != nil && *req.Market != "" {
		market = *req.Market
	}
	id := uuid.New().String()
	n := &domain.News{
		ID:          id,
		SourceURL:   fmt.Sprintf("seed://news/%d", now.UnixMilli()),
		Title:       req.Title,
		ContentHash: "seed_" + id,
		Language:    "en",
		Market:      &market,
		ScrapedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.Create(c.Request().Context(), n); err != nil {
		return err
	}
	return httpx.OK(c, http.StatusCreated, map[string]string{"id": n.ID, "title": n.Title})
}
