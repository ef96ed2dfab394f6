package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/VictorSaf/ainvestfeed/internal/device/domain"
	"github.com/VictorSaf/ainvestfeed/internal/device/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
)

const deviceID = "6a0f6f2c-4b4e-4a8b-9d3e-2c1b0a9f8e7d"

type stubDevices struct {
	created bool
	gotUser string
	gotReg  domain.Registration
}

func (s *stubDevices) Register(ctx context.Context, userID string, reg domain.Registration) (*domain.Device, bool, error) {
	s.gotUser, s.gotReg = userID, reg
	return &domain.Device{ID: deviceID, UserID: userID, PushToken: reg.PushToken}, s.created, nil
}

func (s *stubDevices) List(ctx context.Context, userID string) ([]*domain.Device, error) {
	return []*domain.Device{{ID: deviceID, UserID: userID, PushToken: "tok"}}, nil
}

func (s *stubDevices) Delete(ctx context.Context, userID, id string) error {
	if id != deviceID {
		return service.ErrDeviceNotFound
	}
	return nil
}

func newTestServer(svc DeviceService, userID string) *echo.Echo {
	e := echo.New()
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	g := e.Group("/user", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(middleware.WithIdentity(req.Context(), userID, "u@example.com", "user")))
			}
			return next(c)
		}
	})
	NewDeviceHandler(svc).Register(g)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDeviceHandler_Register(t *testing.T) {
	svc := &stubDevices{created: true}
	e := newTestServer(svc, "u1")

	rec := do(e, http.MethodPost, "/user/devices", `{"pushToken":"tok","platform":"ios"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", svc.gotUser)
	if assert.NotNil(t, svc.gotReg.Platform) {
		assert.Equal(t, "ios", *svc.gotReg.Platform)
	}
	assert.Nil(t, svc.gotReg.Locale)

	svc.created = false
	rec = do(e, http.MethodPost, "/user/devices", `{"pushToken":"tok"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/user/devices", `{"platform":"symbian"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeviceHandler_ListAndDelete(t *testing.T) {
	e := newTestServer(&stubDevices{}, "u1")

	rec := do(e, http.MethodGet, "/user/devices", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pushToken":"tok"`)

	rec = do(e, http.MethodDelete, "/user/devices/"+deviceID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, "/user/devices/00000000-0000-4000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodDelete, "/user/devices/nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeviceHandler_RequiresIdentity(t *testing.T) {
	e := newTestServer(&stubDevices{}, "")
	rec := do(e, http.MethodGet, "/user/devices", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
