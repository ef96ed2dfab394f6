package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/VictorSaf/ainvestfeed/internal/metrics"
	"github.com/VictorSaf/ainvestfeed/internal/platform/httpx"
)

// RequestLogger writes one structured line per request and records the request
// duration metric. It must run inside the error handler so the final status is known.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			latency := time.Since(start)
			req := c.Request()
			res := c.Response()
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.RecordRequest(req.Method, route, strconv.Itoa(res.Status), latency.Seconds())

			attrs := []any{
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
				"route", route,
				"status", res.Status,
				"latency_ms", latency.Milliseconds(),
				"remote_ip", c.RealIP(),
			}
			if cs := res.Header().Get(httpx.CacheHeader); cs != "" {
				attrs = append(attrs, "cache", cs)
			}
			if uid, ok := GetUserID(req.Context()); ok {
				attrs = append(attrs, "user_id", uid)
			}
			logger.InfoContext(req.Context(), "http request", attrs...)
			return nil
		}
	}
}
