// Package server assembles the echo HTTP API: global middleware, route groups and their guards.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	analysishandler "github.com/VictorSaf/ainvestfeed/internal/analysis/handler"
	bookmarkhandler "github.com/VictorSaf/ainvestfeed/internal/bookmark/handler"
	devicehandler "github.com/VictorSaf/ainvestfeed/internal/device/handler"
	healthhandler "github.com/VictorSaf/ainvestfeed/internal/health/handler"
	identityhandler "github.com/VictorSaf/ainvestfeed/internal/identity/handler"
	ingesthandler "github.com/VictorSaf/ainvestfeed/internal/ingestion/handler"
	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	newshandler "github.com/VictorSaf/ainvestfeed/internal/news/handler"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
	"github.com/VictorSaf/ainvestfeed/internal/platform/rbac"
	"github.com/VictorSaf/ainvestfeed/internal/policy/engine"
	scraperhandler "github.com/VictorSaf/ainvestfeed/internal/scraper/handler"
	"github.com/VictorSaf/ainvestfeed/internal/server/middleware"
	userhandler "github.com/VictorSaf/ainvestfeed/internal/user/handler"
)

// Deps holds the services behind each route group. A nil service leaves its routes unmounted.
type Deps struct {
	Logger *slog.Logger
	// ServiceName names request spans. Empty disables otelecho.
	ServiceName string
	// Tokens verifies Bearer access tokens for authenticated groups. Required.
	Tokens middleware.AccessValidator
	// Policy authorizes admin actions. Required when Analysis, Ingester or ScrapingConfigs is set.
	Policy engine.Evaluator
	// RateLimiter applies the per-IP budget to every request. Nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	// AllowedOrigins is the CORS allow-list. Empty allows every origin.
	AllowedOrigins []string

	Auth            identityhandler.AuthService
	News            newshandler.NewsService
	Bookmarks       bookmarkhandler.BookmarkService
	Devices         devicehandler.DeviceService
	Profiles        userhandler.UserRepo
	Analysis        analysishandler.AnalysisService
	Ingester        ingesthandler.Ingester
	ScrapingConfigs scraperhandler.ConfigService
	// Seed enables POST /__seed/news. Leave nil in production.
	Seed ingesthandler.NewsCreator

	HealthDB     healthhandler.Pinger
	HealthPolicy healthhandler.PolicyChecker
	// Metrics exposes GET /metrics.
	Metrics bool
}

// New returns an echo instance with every configured route mounted.
func New(deps Deps) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpx.NewValidator()
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	if deps.ServiceName != "" {
		e.Use(otelecho.Middleware(deps.ServiceName))
	}
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  corsOrigins(deps.AllowedOrigins),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{httpx.CacheHeader, echo.HeaderXRequestID},
		MaxAge:        86400,
	}))
	if deps.RateLimiter != nil {
		e.Use(deps.RateLimiter.Middleware())
	}

	healthhandler.NewServer(deps.HealthDB, deps.HealthPolicy).Register(e)
	if deps.Metrics {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	public := e.Group("")
	authed := e.Group("", middleware.RequireAuth(deps.Tokens))
	user := e.Group("/user", middleware.RequireAuth(deps.Tokens))

	if deps.Auth != nil {
		identityhandler.NewAuthHandler(deps.Auth).Register(e.Group("/auth"))
	}
	if deps.News != nil {
		newshandler.NewNewsHandler(deps.News).Register(public)
	}
	if deps.Bookmarks != nil {
		bookmarkhandler.NewBookmarkHandler(deps.Bookmarks).Register(authed)
	}
	if deps.Devices != nil {
		devicehandler.NewDeviceHandler(deps.Devices).Register(user)
	}
	if deps.Profiles != nil {
		userhandler.NewProfileHandler(deps.Profiles).Register(user)
	}
	if deps.Analysis != nil {
		analyze := authed.Group("", rbac.RequirePermission(deps.Policy, engine.ActionNewsAnalyze))
		analysishandler.NewAnalysisHandler(deps.Analysis).Register(public, analyze)
	}
	if deps.Ingester != nil {
		admin := e.Group("/admin", middleware.RequireAuth(deps.Tokens), rbac.RequirePermission(deps.Policy, engine.ActionNewsIngest))
		ingesthandler.NewIngestHandler(deps.Ingester).Register(admin)
	}
	if deps.ScrapingConfigs != nil {
		admin := e.Group("/admin", middleware.RequireAuth(deps.Tokens), rbac.RequirePermission(deps.Policy, engine.ActionScrapingManage))
		scraperhandler.NewConfigHandler(deps.ScrapingConfigs).Register(admin)
	}
	if deps.Seed != nil {
		ingesthandler.NewSeedHandler(deps.Seed).Register(e)
	}

	// Groups with middleware register catch-all routes; restore a plain 404 for unknown paths.
	notFound := func(c echo.Context) error { return echo.ErrNotFound }
	e.RouteNotFound("/", notFound)
	e.RouteNotFound("/*", notFound)
	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
