package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/identity/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	userdomain "github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

type stubAuth struct {
	registerErr error
	loginErr    error
	refreshErr  error
	loggedOut   []string
}

func (s *stubAuth) Register(ctx context.Context, email, password string, firstName, lastName *string) (*userdomain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &userdomain.User{ID: "u1", Email: email, Role: userdomain.RoleUser, FirstName: firstName}, nil
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &service.LoginResult{
		User:         &userdomain.User{ID: "u1", Email: email, Role: userdomain.RoleUser},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}, nil
}

func (s *stubAuth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return "new-access", nil
}

func (s *stubAuth) Logout(ctx context.Context, refreshToken string) error {
	s.loggedOut = append(s.loggedOut, refreshToken)
	return nil
}

func newTestServer(svc AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	NewAuthHandler(svc).Register(e.Group("/auth"))
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	e := newTestServer(&stubAuth{})

	rec := post(e, "/auth/register", `{"email":"a@b.io","password":"Password123!","firstName":"Ada"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"user":{"id":"u1","email":"a@b.io","role":"user","firstName":"Ada"}}}`, rec.Body.String())

	rec = post(e, "/auth/register", `{"email":"a@b.io","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "password")
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	e := newTestServer(&stubAuth{registerErr: service.ErrEmailInUse})
	rec := post(e, "/auth/register", `{"email":"a@b.io","password":"Password123!"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"DUPLICATE_RESOURCE","message":"Email already in use"}}`, rec.Body.String())
}

func TestAuthHandler_Login(t *testing.T) {
	e := newTestServer(&stubAuth{})
	rec := post(e, "/auth/login", `{"email":"a@b.io","password":"Password123!"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"user":{"id":"u1","email":"a@b.io","role":"user"},
		"tokens":{"accessToken":"access","refreshToken":"refresh"}}}`, rec.Body.String())

	e = newTestServer(&stubAuth{loginErr: service.ErrInvalidCredentials})
	rec = post(e, "/auth/login", `{"email":"a@b.io","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"AUTHENTICATION_REQUIRED","message":"Invalid credentials"}}`, rec.Body.String())
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestServer(&stubAuth{})
	rec := post(e, "/auth/refresh", `{"refreshToken":"r"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"tokens":{"accessToken":"new-access"}}}`, rec.Body.String())

	rec = post(e, "/auth/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	e = newTestServer(&stubAuth{refreshErr: service.ErrInvalidSession})
	rec = post(e, "/auth/refresh", `{"refreshToken":"r"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid session")
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuth{}
	e := newTestServer(svc)
	rec := post(e, "/auth/logout", `{"refreshToken":"r1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Logged out"}`, rec.Body.String())
	assert.Equal(t, []string{"r1"}, svc.loggedOut)
}
