// Package handler exposes article analysis over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/analysis/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

type AnalysisService interface {
	Analyze(ctx context.Context, newsID string) (*service.Result, error)
	Get(ctx context.Context, newsID string) (*service.Overview, error)
}

type AnalysisHandler struct {
	svc AnalysisService
}

func NewAnalysisHandler(svc AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// Register mounts GET /news/:id/analysis on read and POST /news/:id/analyze on write.
// write must enforce authentication and the analyze permission.
func (h *AnalysisHandler) Register(read, write *echo.Group) {
	read.GET("/news/:id/analysis", h.get)
	write.POST("/news/:id/analyze", h.analyze)
}

type newsIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (h *AnalysisHandler) analyze(c echo.Context) error {
	var req newsIDRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Analyze(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusCreated, res)
}

func (h *AnalysisHandler) get(c echo.Context) error {
	var req newsIDRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	ov, err := h.svc.Get(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, ov)
}
