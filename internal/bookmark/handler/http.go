// Package handler exposes bookmarks over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/bookmark/domain"
	"github.com/VictorSaf/ainvestfeed/internal/bookmark/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
)

type BookmarkService interface {
	Toggle(ctx context.Context, userID, newsID string) (service.ToggleResult, error)
	List(ctx context.Context, userID string) ([]domain.Saved, error)
}

type BookmarkHandler struct {
	svc BookmarkService
}

func NewBookmarkHandler(svc BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

// Register mounts POST /news/:id/bookmark and GET /user/bookmarks on g. g must require authentication.
func (h *BookmarkHandler) Register(g *echo.Group) {
	g.POST("/news/:id/bookmark", h.toggle)
	g.GET("/user/bookmarks", h.list)
}

type toggleRequest struct {
	NewsID string `param:"id" validate:"required,uuid"`
}

func (h *BookmarkHandler) toggle(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	var req toggleRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Toggle(ctx, userID, req.NewsID)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if res.Bookmarked {
		status = http.StatusCreated
	}
	return httpx.OK(c, status, res)
}

func (h *BookmarkHandler) list(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	list, err := h.svc.List(ctx, userID)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"bookmarks": list})
}
