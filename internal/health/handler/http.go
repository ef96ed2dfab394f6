// Package handler serves liveness and readiness probes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	ServiceName = "ainvestfeed-api"
	Version     = "0.1.0"
)

// Pinger checks database connectivity. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks the policy engine. *engine.OPAEvaluator implements it.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server serves GET /health and GET /health/ready. Either dependency may be nil; nil checks are skipped.
type Server struct {
	db     Pinger
	policy PolicyChecker
}

func NewServer(db Pinger, policy PolicyChecker) *Server {
	return &Server{db: db, policy: policy}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.live)
	e.GET("/health/ready", s.ready)
}

type status struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// live reports that the process is up. It does not touch dependencies.
func (s *Server) live(c echo.Context) error {
	return c.JSON(http.StatusOK, status{Status: "ok", Service: ServiceName, Version: Version})
}

// ready reports 503 when the database or policy engine is unavailable.
func (s *Server) ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true
	if s.db != nil {
		checks["database"] = "ok"
		if err := s.db.PingContext(ctx); err != nil {
			checks["database"] = "unavailable"
			healthy = false
		}
	}
	if s.policy != nil {
		checks["policy"] = "ok"
		if err := s.policy.HealthCheck(ctx); err != nil {
			checks["policy"] = "unavailable"
			healthy = false
		}
	}
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, status{Status: "unavailable", Service: ServiceName, Version: Version, Checks: checks})
	}
	return c.JSON(http.StatusOK, status{Status: "ok", Service: ServiceName, Version: Version, Checks: checks})
}
