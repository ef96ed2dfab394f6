// Package handler exposes news list, detail and search over HTTP.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/cache"
	"github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/news/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

// NewsService is the subset of *service.NewsService used by the handler.
type NewsService interface {
	List(ctx context.Context, q service.ListQuery) (*service.ListResult, cache.Status, error)
	Get(ctx context.Context, id string) (*domain.News, cache.Status, error)
	Search(ctx context.Context, q service.SearchQuery) (*service.SearchResult, cache.Status, error)
}

type NewsHandler struct {
	svc NewsService
}

func NewNewsHandler(svc NewsService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// Register mounts GET /news, GET /news/:id and GET /search on g.
func (h *NewsHandler) Register(g *echo.Group) {
	g.GET("/news", h.list)
	g.GET("/news/:id", h.get)
	g.GET("/search", h.search)
}

type listRequest struct {
	Page          int    `query:"page" validate:"min=1"`
	Limit         int    `query:"limit" validate:"min=1,max=100"`
	Market        string `query:"market" validate:"omitempty,max=10"`
	ConfidenceMin int    `query:"confidence_min" validate:"min=0,max=100"`
}

type getRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type searchRequest struct {
	Q      string `query:"q" validate:"required,max=200"`
	Limit  int    `query:"limit" validate:"min=1,max=50"`
	Market string `query:"market" validate:"omitempty,max=10"`
}

func (h *NewsHandler) list(c echo.Context) error {
	var req listRequest
	if err := c.Bind(&req); err != nil {
		return badQuery()
	}
	if c.QueryParam("page") == "" {
		req.Page = service.DefaultPage
	}
	if c.QueryParam("limit") == "" {
		req.Limit = service.DefaultLimit
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	q := service.ListQuery{Page: req.Page, Limit: req.Limit, Market: optional(req.Market)}
	if c.QueryParam("confidence_min") != "" {
		v := req.ConfidenceMin
		q.ConfidenceMin = &v
	}
	res, status, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	c.Response().Header().Set(httpx.CacheHeader, string(status))
	return httpx.OK(c, http.StatusOK, res)
}

func (h *NewsHandler) get(c echo.Context) error {
	var req getRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	n, status, err := h.svc.Get(c.Request().Context(), strings.ToLower(req.ID))
	if err != nil {
		return err
	}
	c.Response().Header().Set(httpx.CacheHeader, string(status))
	return httpx.OK(c, http.StatusOK, n)
}

func (h *NewsHandler) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return badQuery()
	}
	if c.QueryParam("limit") == "" {
		req.Limit = service.DefaultSearchLimit
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	res, status, err := h.svc.Search(c.Request().Context(), service.SearchQuery{Q: req.Q, Limit: req.Limit, Market: optional(req.Market)})
	if err != nil {
		return err
	}
	c.Response().Header().Set(httpx.CacheHeader, string(status))
	return httpx.OK(c, http.StatusOK, res)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
