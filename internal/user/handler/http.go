// Package handler exposes the caller's profile over HTTP.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata" // timezone validation must not depend on the host zoneinfo

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
	"github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

// ErrUserNotFound is returned when the authenticated user no longer exists.
var ErrUserNotFound = apperr.NotFound("User not found")

// UserRepo is the subset of the user repository used by the profile handler.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, p domain.ProfileUpdate) (*domain.User, error)
}

// ProfileHandler serves GET and PUT /user/profile.
type ProfileHandler struct {
	users UserRepo
}

func NewProfileHandler(users UserRepo) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Register mounts the profile routes on g. g must require authentication.
func (h *ProfileHandler) Register(g *echo.Group) {
	g.GET("/profile", h.get)
	g.PUT("/profile", h.update)
}

type profileView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	Language    string     `json:"language"`
	Timezone    string     `json:"timezone"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Language  *string `json:"language" validate:"omitempty,min=2,max=10"`
	Timezone  *string `json:"timezone" validate:"omitempty,max=64"`
}

func toProfileView(u *domain.User) profileView {
	return profileView{
		ID:          u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Language:    u.Language,
		Timezone:    u.Timezone,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func (h *ProfileHandler) get(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"user": toProfileView(u)})
}

func (h *ProfileHandler) update(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		return apperr.Authentication("Missing or invalid authorization")
	}
	var req updateProfileRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return apperr.Validation("invalid request", map[string]string{"timezone": "timezone must be an IANA zone name"})
		}
	}
	u, err := h.users.UpdateProfile(ctx, userID, domain.ProfileUpdate{
		FirstName: trim(req.FirstName),
		LastName:  trim(req.LastName),
		Language:  trim(req.Language),
		Timezone:  trim(req.Timezone),
	})
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return httpx.OK(c, http.StatusOK, map[string]any{"user": toProfileView(u)})
}

func trim(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
