// Package handler exposes the auth service over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/identity/service"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	userdomain "github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

// AuthService is the subset of *service.AuthService used by the handler.
type AuthService interface {
	Register(ctx context.Context, email, password string, firstName, lastName *string) (*userdomain.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler serves /auth/register, /auth/login, /auth/refresh and /auth/logout.
type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register mounts the auth routes on g.
func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/refresh", h.refresh)
	g.POST("/logout", h.logout)
}

type registerRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=8,max=128"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type userView struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type tokensView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func toUserView(u *userdomain.User) userView {
	return userView{ID: u.ID, Email: u.Email, Role: string(u.Role), FirstName: u.FirstName, LastName: u.LastName}
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	u, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusCreated, map[string]any{"user": toUserView(u)})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, map[string]any{
		"user":   toUserView(res.User),
		"tokens": tokensView{AccessToken: res.AccessToken, RefreshToken: res.RefreshToken},
	})
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	access, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"tokens": tokensView{AccessToken: access}})
}

func (h *AuthHandler) logout(c echo.Context) error {
	var req refreshRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return err
	}
	return httpx.Message(c, http.StatusOK, "Logged out")
}
