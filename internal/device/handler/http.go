// Package handler exposes device registration over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
)

// DeviceService is the subset of *service.DeviceService used by the handler.
type DeviceService interface {
	Register(ctx context.Context, userID string, reg domain.Registration) (*domain.Device, bool, error)
	List(ctx context.Context, userID string) ([]*domain.Device, error)
	Delete(ctx context.Context, userID, id string) error
}

type DeviceHandler struct {
	svc DeviceService
}

func NewDeviceHandler(svc DeviceService) *DeviceHandler {
	return &DeviceHandler{svc: svc}
}

// Register mounts the device routes on g. g must require authentication.
func (h *DeviceHandler) Register(g *echo.Group) {
	g.POST("/devices", h.register)
	g.GET("/devices", h.list)
	g.DELETE("/devices/:id", h.delete)
}

type registerRequest struct {
	PushToken   string  `json:"pushToken" validate:"required,max=512"`
	Platform    *string `json:"platform" validate:"omitempty,oneof=ios android web"`
	DeviceModel *string `json:"deviceModel" validate:"omitempty,max=100"`
	Locale      *string `json:"locale" validate:"omitempty,max=20"`
}

type deleteRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (h *DeviceHandler) register(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request().Context())
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	var req registerRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	d, created, err := h.svc.Register(c.Request().Context(), userID, domain.Registration{
		PushToken:   req.PushToken,
		Platform:    req.Platform,
		DeviceModel: req.DeviceModel,
		Locale:      req.Locale,
	})
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return httpx.OK(c, status, map[string]any{"device": d})
}

func (h *DeviceHandler) list(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request().Context())
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	list, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"devices": list})
}

func (h *DeviceHandler) delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request().Context())
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	var req deleteRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), userID, req.ID); err != nil {
		return err
	}
	return httpx.Message(c, http.StatusOK, "Device removed")
}
