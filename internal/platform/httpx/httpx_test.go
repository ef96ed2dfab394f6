package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", apperr.Validation("bad input", nil), http.StatusBadRequest, "VALIDATION_ERROR", "bad input"},
		{"authentication", apperr.Authentication("Invalid credentials"), http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", "Invalid credentials"},
		{"not found", apperr.NotFound("News not found"), http.StatusNotFound, "RESOURCE_NOT_FOUND", "News not found"},
		{"duplicate", apperr.Duplicate("Email already in use"), http.StatusConflict, "DUPLICATE_RESOURCE", "Email already in use"},
		{"wrapped apperr", errors.Join(errors.New("ctx"), apperr.Forbidden("nope")), http.StatusForbidden, "FORBIDDEN", "nope"},
		{"unknown error hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Not Found"},
		{"echo too many requests", echo.ErrTooManyRequests, http.StatusTooManyRequests, "RATE_LIMITED", "Too Many Requests"},
		{"echo unsupported media", echo.ErrUnsupportedMediaType, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported Media Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			e.HTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
		})
	}
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestBind(t *testing.T) {
	e := newEcho()
	e.POST("/register", func(c echo.Context) error {
		var req registerReq
		if err := Bind(c, &req); err != nil {
			return err
		}
		return OK(c, http.StatusCreated, map[string]string{"email": req.Email})
	})

	t.Run("valid", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"a@b.io","password":"Password123!"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, map[string]any{"email": "a@b.io"}, env.Data)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"nope","password":"short"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "email must be a valid email address", env.Error.Fields["email"])
		assert.Equal(t, "password must be at least 8 characters long", env.Error.Fields["password"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "malformed request", decode(t, rec).Error.Message)
	})
}

func TestMessage(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	require.NoError(t, Message(c, http.StatusOK, "Logged out"))
	assert.JSONEq(t, `{"success":true,"message":"Logged out"}`, rec.Body.String())
}
