// Package handler exposes scraping configuration to admins over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/scraper"
	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

// ConfigService is the subset of *scraper.ConfigService used by the handler.
type ConfigService interface {
	Create(ctx context.Context, in scraper.NewConfig) (*domain.Config, error)
	List(ctx context.Context) ([]*domain.Config, error)
}

type ConfigHandler struct {
	svc ConfigService
}

func NewConfigHandler(svc ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// Register mounts the routes on g. g must enforce the scraping:manage permission.
func (h *ConfigHandler) Register(g *echo.Group) {
	g.GET("/scraping/configs", h.list)
	g.POST("/scraping/configs", h.create)
}

type createRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	SourceType   string `json:"sourceType" validate:"required,oneof=rss api scraper"`
	SourceURL    string `json:"sourceUrl" validate:"required,url,max=2048"`
	CronSchedule string `json:"cronSchedule" validate:"omitempty,max=100"`
	IsActive     *bool  `json:"isActive"`
}

func (h *ConfigHandler) list(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Config{}
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"configs": list})
}

func (h *ConfigHandler) create(c echo.Context) error {
	var req createRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	cfg, err := h.svc.Create(c.Request().Context(), scraper.NewConfig{
		Name:         req.Name,
		SourceType:   req.SourceType,
		SourceURL:    req.SourceURL,
		CronSchedule: req.CronSchedule,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusCreated, map[string]any{"config": cfg})
}
